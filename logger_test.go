package htmlsanitizer_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/htmlsanitizer/v2"
)

func TestHCLogChangeLogger(t *testing.T) {
	var buf bytes.Buffer
	l := hclog.New(&hclog.LoggerOptions{
		Name:       "audit",
		Level:      hclog.Debug,
		Output:     &buf,
		JSONFormat: true,
	})

	p := htmlsanitizer.DefaultPolicy()
	p.Logger = htmlsanitizer.NewHCLogChangeLogger(l)
	sanitize(t, `<b onclick="x">a</b><script>y</script>`, p)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "markup sanitized", first["@message"])
	assert.Equal(t, "removed", first["change"])
	assert.Equal(t, "b", first["tag"])
	assert.Equal(t, "onclick", first["attribute"])
	assert.Equal(t, "x", first["old"])

	var second map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "script", second["tag"])
	assert.NotContains(t, second, "attribute")
}

func TestHCLogChangeLogger_QuietAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	l := hclog.New(&hclog.LoggerOptions{Level: hclog.Info, Output: &buf})
	p := htmlsanitizer.DefaultPolicy()
	p.Logger = htmlsanitizer.NewHCLogChangeLogger(l)
	sanitize(t, `<script>y</script>`, p)
	assert.Empty(t, buf.String())
}
