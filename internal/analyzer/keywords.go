package analyzer

import (
	"regexp"
	"strings"
	"unicode"
)

// DefaultVocabulary is the curated technical-term list matched against
// job descriptions. Software-engineering specific; callers screening
// other domains can pass their own list to ExtractKeywordsFromVocab.
var DefaultVocabulary = []string{
	"Python", "Java", "C++", "JavaScript", "TypeScript", "React", "Angular",
	"Vue", "Node.js", "Django", "Flask", "Spring", "Hibernate", "PostgreSQL",
	"MySQL", "MongoDB", "Redis", "Elasticsearch", "Docker", "Kubernetes",
	"AWS", "Azure", "GCP", "Lambda", "S3", "EC2", "Terraform", "Ansible",
	"Jenkins", "Git", "GitHub", "GitLab", "CI/CD", "Agile", "Scrum", "Kanban",
	"REST", "API", "GraphQL", "Microservices", "Serverless", "Linux", "Bash",
	"Shell", "TensorFlow", "PyTorch", "Keras", "Pandas", "NumPy",
	"Scikit-learn", "NLP", "ML", "AI", "Data Science",
}

var (
	properNounRe   = regexp.MustCompile(`\b[A-Z][a-z]{2,}\b`)
	defaultVocabRe = vocabRegexp(DefaultVocabulary)
)

// ExtractKeywords derives the keyword set for a job description:
// capitalized words of three or more letters plus case-insensitive
// matches of the default technical vocabulary, deduplicated and capped
// at topN. Element order carries no meaning.
func ExtractKeywords(jobDescription string, topN int) []string {
	return extractKeywords(jobDescription, defaultVocabRe, topN)
}

// ExtractKeywordsFromVocab is ExtractKeywords with a caller-supplied
// technical vocabulary.
func ExtractKeywordsFromVocab(jobDescription string, vocab []string, topN int) []string {
	return extractKeywords(jobDescription, vocabRegexp(vocab), topN)
}

func extractKeywords(jobDescription string, vocabRe *regexp.Regexp, topN int) []string {
	if topN <= 0 {
		topN = DefaultTopKeywords
	}

	seen := make(map[string]bool)
	var keywords []string
	add := func(kw string) {
		if !seen[kw] {
			seen[kw] = true
			keywords = append(keywords, kw)
		}
	}

	for _, m := range properNounRe.FindAllString(jobDescription, -1) {
		add(m)
	}
	for _, m := range vocabRe.FindAllString(jobDescription, -1) {
		add(titleCase(m))
	}

	if len(keywords) > topN {
		keywords = keywords[:topN]
	}
	return keywords
}

func vocabRegexp(vocab []string) *regexp.Regexp {
	quoted := make([]string, len(vocab))
	for i, term := range vocab {
		quoted[i] = regexp.QuoteMeta(term)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// titleCase uppercases the first letter of every letter run and lowers
// the rest, so vocabulary matches display uniformly whatever their
// casing in the job description.
func titleCase(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) && !prevLetter:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsLetter(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevLetter = unicode.IsLetter(r)
	}
	return b.String()
}
