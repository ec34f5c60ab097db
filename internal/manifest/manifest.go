package manifest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// Kind classifies a manifest line.
type Kind string

const (
	// KindRequirement is a regular name-based requirement (possibly pinned).
	KindRequirement Kind = "requirement"
	// KindEditable is an editable install (-e ...).
	KindEditable Kind = "editable"
	// KindReference includes another requirements file (-r / -c ...).
	KindReference Kind = "reference"
	// KindURL is a direct URL or VCS requirement.
	KindURL Kind = "url"
	// KindOption is any other pip option line (--index-url, --no-binary, ...).
	KindOption Kind = "option"
)

// Specifier is a single version constraint, e.g. ">=2.0".
type Specifier struct {
	Op      string // ==, >=, <=, ~=, !=, <, >, ===
	Version string
}

func (s Specifier) String() string {
	return s.Op + s.Version
}

// Requirement is one logical line of a dependency manifest.
type Requirement struct {
	Kind       Kind
	Name       string      // normalized distribution name (empty for non-requirement kinds)
	Extras     []string    // optional extras, e.g. uvicorn[standard]
	Specifiers []Specifier // version constraints, empty means "any"
	Marker     string      // environment marker after ';', verbatim
	Raw        string      // logical line as written (continuations joined, comments stripped)
	Line       int         // 1-based line number of the first physical line
}

// String renders the requirement in pip notation.
func (r Requirement) String() string {
	if r.Kind != KindRequirement {
		return r.Raw
	}
	var b strings.Builder
	b.WriteString(r.Name)
	if len(r.Extras) > 0 {
		b.WriteString("[" + strings.Join(r.Extras, ",") + "]")
	}
	for i, s := range r.Specifiers {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// Pinned reports whether the requirement is pinned to an exact version.
func (r Requirement) Pinned() bool {
	for _, s := range r.Specifiers {
		if s.Op == "==" || s.Op == "===" {
			return true
		}
	}
	return false
}

// Manifest is the parsed contents of a requirements file.
type Manifest struct {
	Path         string
	Requirements []Requirement
}

// Names returns the normalized names of all name-based requirements.
func (m *Manifest) Names() []string {
	var names []string
	for _, r := range m.Requirements {
		if r.Kind == KindRequirement {
			names = append(names, r.Name)
		}
	}
	return names
}

// CountByKind returns the number of entries of the given kind.
func (m *Manifest) CountByKind(kind Kind) int {
	n := 0
	for _, r := range m.Requirements {
		if r.Kind == kind {
			n++
		}
	}
	return n
}

// ParseError describes a malformed manifest line.
type ParseError struct {
	Path    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Message)
}

// PEP 503 normalization collapses runs of -, _ and . to a single dash.
var nameNormalizer = regexp.MustCompile(`[-_.]+`)

// NormalizeName normalizes a distribution name per PEP 503.
func NormalizeName(name string) string {
	return strings.ToLower(nameNormalizer.ReplaceAllString(name, "-"))
}

var (
	namePattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)
	// Longest operators first so ">=" is not consumed as ">".
	specifierOps = []string{"===", "==", ">=", "<=", "~=", "!=", "<", ">"}
)

// ParseFile parses the manifest at path.
func ParseFile(path string) (*Manifest, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer func() { _ = f.Close() }()

	m, err := Parse(f)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
			return nil, perr
		}
		return nil, err
	}
	m.Path = path
	return m, nil
}

// Parse parses a requirements file from r.
//
// Physical lines ending in a backslash are joined into one logical line
// before interpretation, matching pip's behavior.
func Parse(r io.Reader) (*Manifest, error) {
	m := &Manifest{}
	scanner := bufio.NewScanner(r)

	lineNo := 0
	logicalStart := 0
	var pending strings.Builder

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if pending.Len() == 0 {
			logicalStart = lineNo
		}

		if trimmed := strings.TrimRight(line, " \t"); strings.HasSuffix(trimmed, `\`) {
			pending.WriteString(strings.TrimSuffix(trimmed, `\`))
			continue
		}

		pending.WriteString(line)
		logical := pending.String()
		pending.Reset()

		req, err := parseLine(logical, logicalStart)
		if err != nil {
			return nil, err
		}
		if req != nil {
			m.Requirements = append(m.Requirements, *req)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	if pending.Len() > 0 {
		return nil, &ParseError{Line: logicalStart, Message: "unterminated line continuation"}
	}

	return m, nil
}

// parseLine interprets one logical line. Returns nil for blanks and comments.
func parseLine(line string, lineNo int) (*Requirement, error) {
	raw := stripComment(strings.TrimSpace(line))
	if raw == "" {
		return nil, nil
	}

	switch {
	case strings.HasPrefix(raw, "-e ") || strings.HasPrefix(raw, "--editable"):
		return &Requirement{Kind: KindEditable, Raw: raw, Line: lineNo}, nil
	case strings.HasPrefix(raw, "-r ") || strings.HasPrefix(raw, "-c ") ||
		strings.HasPrefix(raw, "--requirement") || strings.HasPrefix(raw, "--constraint"):
		return &Requirement{Kind: KindReference, Raw: raw, Line: lineNo}, nil
	case strings.HasPrefix(raw, "-"):
		return &Requirement{Kind: KindOption, Raw: raw, Line: lineNo}, nil
	case strings.Contains(raw, "://") || strings.Contains(raw, " @ "):
		// Direct URL or VCS reference, passed through to pip untouched.
		return &Requirement{Kind: KindURL, Raw: raw, Line: lineNo}, nil
	}

	req := &Requirement{Kind: KindRequirement, Raw: raw, Line: lineNo}

	spec := raw
	if idx := strings.Index(spec, ";"); idx >= 0 {
		req.Marker = strings.TrimSpace(spec[idx+1:])
		spec = strings.TrimSpace(spec[:idx])
	}

	// Split off the version specifier list.
	nameEnd := len(spec)
	for i := 0; i < len(spec); i++ {
		if strings.ContainsRune("<>=!~", rune(spec[i])) {
			nameEnd = i
			break
		}
	}
	namePart := strings.TrimSpace(spec[:nameEnd])
	specPart := strings.TrimSpace(spec[nameEnd:])

	// Extras: pkg[extra1,extra2]
	if idx := strings.Index(namePart, "["); idx >= 0 {
		if !strings.HasSuffix(namePart, "]") {
			return nil, &ParseError{Line: lineNo, Message: fmt.Sprintf("unclosed extras bracket in %q", raw)}
		}
		for _, extra := range strings.Split(namePart[idx+1:len(namePart)-1], ",") {
			extra = strings.TrimSpace(extra)
			if extra != "" {
				req.Extras = append(req.Extras, extra)
			}
		}
		namePart = namePart[:idx]
	}

	if !namePattern.MatchString(namePart) {
		return nil, &ParseError{Line: lineNo, Message: fmt.Sprintf("invalid requirement name %q", namePart)}
	}
	req.Name = NormalizeName(namePart)

	if specPart != "" {
		specs, err := parseSpecifiers(specPart, lineNo)
		if err != nil {
			return nil, err
		}
		req.Specifiers = specs
	}

	return req, nil
}

func parseSpecifiers(s string, lineNo int) ([]Specifier, error) {
	var specs []Specifier
	for _, clause := range strings.Split(s, ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			return nil, &ParseError{Line: lineNo, Message: "empty version specifier clause"}
		}

		var op string
		for _, candidate := range specifierOps {
			if strings.HasPrefix(clause, candidate) {
				op = candidate
				break
			}
		}
		if op == "" {
			return nil, &ParseError{Line: lineNo, Message: fmt.Sprintf("invalid version specifier %q", clause)}
		}

		version := strings.TrimSpace(clause[len(op):])
		if version == "" {
			return nil, &ParseError{Line: lineNo, Message: fmt.Sprintf("missing version after %q", op)}
		}
		specs = append(specs, Specifier{Op: op, Version: version})
	}
	return specs, nil
}

// stripComment removes a trailing comment. A '#' starts a comment only at the
// beginning of the line or when preceded by whitespace, matching pip.
func stripComment(line string) string {
	if strings.HasPrefix(line, "#") {
		return ""
	}
	for i := 1; i < len(line); i++ {
		if line[i] == '#' && (line[i-1] == ' ' || line[i-1] == '\t') {
			return strings.TrimSpace(line[:i])
		}
	}
	return strings.TrimSpace(line)
}
