package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ServiceManifest(t *testing.T) {
	t.Parallel()
	input := `# API
fastapi==0.104.1
uvicorn[standard]==0.24.0

# OCR + imaging
pytesseract==0.3.10
Pillow>=10.0,<11
pdf2image==1.16.3

# Storage
motor==3.3.2
redis==5.0.1

scikit-learn~=1.3 ; python_version >= "3.9"
`

	m, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, m.Requirements, 8)

	assert.Equal(t, []string{
		"fastapi", "uvicorn", "pytesseract", "pillow",
		"pdf2image", "motor", "redis", "scikit-learn",
	}, m.Names())

	uvicorn := m.Requirements[1]
	assert.Equal(t, KindRequirement, uvicorn.Kind)
	assert.Equal(t, []string{"standard"}, uvicorn.Extras)
	assert.True(t, uvicorn.Pinned())

	pillow := m.Requirements[3]
	require.Len(t, pillow.Specifiers, 2)
	assert.Equal(t, ">=", pillow.Specifiers[0].Op)
	assert.Equal(t, "10.0", pillow.Specifiers[0].Version)
	assert.Equal(t, "<", pillow.Specifiers[1].Op)
	assert.False(t, pillow.Pinned())

	sklearn := m.Requirements[7]
	assert.Equal(t, `python_version >= "3.9"`, sklearn.Marker)
	assert.Equal(t, 14, sklearn.Line)
}

func TestParse_NormalizesNames(t *testing.T) {
	t.Parallel()
	m, err := Parse(strings.NewReader("Flask_SQLAlchemy==3.0.0\nruamel.yaml\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"flask-sqlalchemy", "ruamel-yaml"}, m.Names())
}

func TestParse_InlineComments(t *testing.T) {
	t.Parallel()
	m, err := Parse(strings.NewReader("requests==2.31.0  # pinned for CVE-2023-32681\n"))
	require.NoError(t, err)
	require.Len(t, m.Requirements, 1)
	assert.Equal(t, "requests==2.31.0", m.Requirements[0].String())
}

func TestParse_LineContinuation(t *testing.T) {
	t.Parallel()
	m, err := Parse(strings.NewReader("pandas \\\n  >=2.0 \\\n  ,<3\n"))
	require.NoError(t, err)
	require.Len(t, m.Requirements, 1)
	assert.Equal(t, "pandas", m.Requirements[0].Name)
	assert.Len(t, m.Requirements[0].Specifiers, 2)
	assert.Equal(t, 1, m.Requirements[0].Line)
}

func TestParse_NonRequirementKinds(t *testing.T) {
	t.Parallel()
	input := `--index-url https://pypi.internal/simple
-r base.txt
-e ./vendored/parser
git+https://github.com/example/lib.git@v1.2#egg=lib
`
	m, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, m.Requirements, 4)
	assert.Equal(t, KindOption, m.Requirements[0].Kind)
	assert.Equal(t, KindReference, m.Requirements[1].Kind)
	assert.Equal(t, KindEditable, m.Requirements[2].Kind)
	assert.Equal(t, KindURL, m.Requirements[3].Kind)

	assert.Equal(t, 1, m.CountByKind(KindReference))
	assert.Empty(t, m.Names())
}

func TestParse_InvalidSpecifier(t *testing.T) {
	t.Parallel()
	_, err := Parse(strings.NewReader("numpy\nfastapi=0.104.1\n"))
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
	assert.Contains(t, perr.Message, "invalid version specifier")
}

func TestParse_InvalidName(t *testing.T) {
	t.Parallel()
	_, err := Parse(strings.NewReader("-not-a-package==1.0\n"))
	// Leading dash is treated as an option line, so use a truly bad name.
	require.NoError(t, err)

	_, err = Parse(strings.NewReader("bad name==1.0\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid requirement name")
}

func TestParse_UnclosedExtras(t *testing.T) {
	t.Parallel()
	_, err := Parse(strings.NewReader("uvicorn[standard==0.24.0\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unclosed extras bracket")
}

func TestParse_MissingVersionAfterOperator(t *testing.T) {
	t.Parallel()
	_, err := Parse(strings.NewReader("redis>=\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing version")
}

func TestParseFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte("httpx==0.25.0\n"), 0o600))

	m, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, m.Path)
	require.Len(t, m.Requirements, 1)
	assert.Equal(t, "httpx", m.Requirements[0].Name)
}

func TestParseFile_Missing(t *testing.T) {
	t.Parallel()
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open manifest")
}

func TestParseFile_ErrorIncludesPath(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(path, []byte("fastapi=broken\n"), 0o600))

	_, err := ParseFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path+":1:")
}
