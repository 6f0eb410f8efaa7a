package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
)

func TestRunVersion(t *testing.T) {
	var out, errOut bytes.Buffer
	code, err := run([]string{"boxdraw", "version"}, strings.NewReader(""), &out, &errOut)

	assert.NoError(t, err)
	assert.EqualValues(t, code, 0)
	assert.True(t, out.Len() > 0, "expected version output")
}

func TestRunUnknownCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	code, err := run([]string{"boxdraw", "bogus"}, strings.NewReader(""), &out, &errOut)

	assert.True(t, err != nil, "expected an error for an unknown command")
	assert.EqualValues(t, code, 2)
}

func TestRunRenderFromStdin(t *testing.T) {
	doc := "graph:\n  root: A\nnodes:\n  - id: A\n  - id: B\nedges:\n  - from: A\n    to: B\n"
	var out, errOut bytes.Buffer
	code, err := run([]string{"boxdraw", "render"}, strings.NewReader(doc), &out, &errOut)

	assert.NoError(t, err)
	assert.EqualValues(t, code, 0)
	assert.True(t, strings.Contains(out.String(), "A"), "expected node A in output:\n%s", out.String())
}

func TestRunRenderInvalidDocument(t *testing.T) {
	doc := "groups:\n  - name: g\n    nodes: [ghost]\n"
	var out, errOut bytes.Buffer
	code, err := run([]string{"boxdraw", "render"}, strings.NewReader(doc), &out, &errOut)

	assert.True(t, err != nil, "expected an error for a document referencing an unknown node")
	assert.EqualValues(t, code, 1)
}
