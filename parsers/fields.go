package parsers

import (
	"regexp"
	"strings"
)

// FieldKind identifies a value the extractor can pull out of a line
type FieldKind int

const (
	FieldEventID FieldKind = iota
	FieldTimestamp
	FieldAccount
	FieldSourceAddress
)

// String returns the field name used in logs and diagnostics
func (k FieldKind) String() string {
	switch k {
	case FieldEventID:
		return "event_id"
	case FieldTimestamp:
		return "timestamp"
	case FieldAccount:
		return "account"
	case FieldSourceAddress:
		return "source_address"
	default:
		return "unknown"
	}
}

// Labels match anywhere in the line and ignore case, since exports vary in
// indentation and may carry encoding noise in front of the label.
var (
	eventIDPattern     = regexp.MustCompile(`(?i)Event ID:\s*(\d+)`)
	datePattern        = regexp.MustCompile(`(?i)\bDate:\s*(.+)`)
	accountNamePattern = regexp.MustCompile(`(?i)Account Name:\s*(.+)`)
	userNamePattern    = regexp.MustCompile(`(?i)User Name:\s*(.+)`)
	sourceAddrPattern  = regexp.MustCompile(`(?i)Source (?:Network )?Address:\s*(.+)`)

	// Four octets 0-255 joined by dots
	ipv4Pattern = regexp.MustCompile(
		`\b(?:(?:25[0-5]|2[0-4]\d|[01]?\d?\d)\.){3}(?:25[0-5]|2[0-4]\d|[01]?\d?\d)\b`)
)

// placeholderAccounts are values Windows writes when no account applies
var placeholderAccounts = map[string]bool{
	"N/A": true,
	"-":   true,
}

// ExtractField returns the value of kind found in line. The boolean is false
// when the line carries no such field; a malformed line is never an error.
func ExtractField(line string, kind FieldKind) (string, bool) {
	switch kind {
	case FieldEventID:
		return submatch(eventIDPattern, line)
	case FieldTimestamp:
		return submatch(datePattern, line)
	case FieldAccount:
		if v, ok := submatch(accountNamePattern, line); ok {
			return v, true
		}
		return submatch(userNamePattern, line)
	case FieldSourceAddress:
		return ExtractSourceAddress(line)
	}
	return "", false
}

// ExtractSourceAddress pulls the labeled source address from line.
// An embedded dotted quad in the labeled value wins over the raw text; a value of
// exactly "-" means no address and reports absent.
func ExtractSourceAddress(line string) (string, bool) {
	raw, ok := submatch(sourceAddrPattern, line)
	if !ok {
		return "", false
	}
	return NormalizeAddress(raw)
}

// NormalizeAddress applies the labeled-value address rules to a raw vendor string
func NormalizeAddress(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if ip := ipv4Pattern.FindString(raw); ip != "" {
		return ip, true
	}
	if raw == "" || raw == "-" {
		return "", false
	}
	return raw, true
}

// ExtractInlineIPv4 scans the whole line for a dotted quad
func ExtractInlineIPv4(line string) (string, bool) {
	ip := ipv4Pattern.FindString(line)
	return ip, ip != ""
}

// IsPlaceholderAccount reports whether name is a "no account" marker such as N/A
func IsPlaceholderAccount(name string) bool {
	return placeholderAccounts[strings.ToUpper(strings.TrimSpace(name))]
}

// IsMachineAccount reports whether name is a computer or service account
func IsMachineAccount(name string) bool {
	return strings.HasSuffix(strings.TrimSpace(name), "$")
}

// accountRank orders candidate account values: absent < placeholder < machine < human
func accountRank(name string) int {
	switch {
	case name == "":
		return 0
	case IsPlaceholderAccount(name):
		return 1
	case IsMachineAccount(name):
		return 2
	default:
		return 3
	}
}

// PreferAccount returns whichever of current and candidate should represent the
// record. The first value seen is kept unless the candidate ranks strictly higher.
func PreferAccount(current, candidate string) string {
	if accountRank(candidate) > accountRank(current) {
		return candidate
	}
	return current
}

func submatch(re *regexp.Regexp, line string) (string, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	v := strings.TrimSpace(m[1])
	return v, v != ""
}
