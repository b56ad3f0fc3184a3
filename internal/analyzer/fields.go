package analyzer

import (
	"regexp"
	"strings"
)

// CandidateProfile holds the contact fields pulled from a resume.
// Extraction is regex heuristics over raw text, not entity recognition:
// wrong or missed values on unusual layouts are a known limitation.
type CandidateProfile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	FileName string `json:"file_name"`
}

var (
	emailRe    = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`)
	phoneRe    = regexp.MustCompile(`(\+?977\d{10}|\b\d{10}\b)`)
	linkedinRe = regexp.MustCompile(`(?:https?://)?(?:www\.)?linkedin\.com/[A-Za-z0-9_/.-]+`)
	githubRe   = regexp.MustCompile(`(?:https?://)?(?:www\.)?github\.com/[A-Za-z0-9_/.-]+`)
	nonDigitRe = regexp.MustCompile(`\D`)
)

// ExtractFields derives a candidate profile from extracted resume text.
// Multi-valued fields are joined with ", " for display; missing name,
// email or phone report "Unknown". FileName is left for the caller.
func ExtractFields(text string) CandidateProfile {
	emails := emailRe.FindAllString(text, -1)

	var phones []string
	for _, raw := range phoneRe.FindAllString(text, -1) {
		if p := normalizePhone(raw); p != "" {
			phones = append(phones, p)
		}
	}

	return CandidateProfile{
		Name:     candidateName(text),
		Email:    joinOrUnknown(emails),
		Phone:    joinOrUnknown(phones),
		LinkedIn: firstMatch(linkedinRe, text),
		GitHub:   firstMatch(githubRe, text),
	}
}

// normalizePhone keeps 13-digit numbers with the 977 country code
// (normalized to +977 plus the trailing ten digits) and bare ten-digit
// numbers. Anything else is discarded.
func normalizePhone(raw string) string {
	digits := nonDigitRe.ReplaceAllString(raw, "")
	switch {
	case len(digits) == 13 && strings.HasPrefix(digits, "977"):
		return "+977" + digits[3:]
	case len(digits) == 10:
		return digits
	}
	return ""
}

// candidateName scans for a line mentioning "name" and takes the text
// after the last colon, falling back to the first non-blank line.
func candidateName(text string) string {
	lines := strings.Split(text, "\n")

	name := ""
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line), "name") {
			parts := strings.Split(line, ":")
			name = strings.TrimSpace(parts[len(parts)-1])
			break
		}
	}
	if name == "" {
		for _, line := range lines {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				name = trimmed
				break
			}
		}
	}
	if name == "" {
		name = "Unknown"
	}
	return name
}

func joinOrUnknown(values []string) string {
	if len(values) == 0 {
		return "Unknown"
	}
	return strings.Join(values, ", ")
}

func firstMatch(re *regexp.Regexp, text string) string {
	matches := re.FindAllString(text, -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[0]
}
