package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func newTestPrinter() (*Printer, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &Printer{Out: out, Err: errOut}, out, errOut
}

func TestPrinter_JSON_Pretty(t *testing.T) {
	p, out, _ := newTestPrinter()

	p.JSON(gjson.Parse(`{"name":"Ops","teamId":"t-1"}`), true)

	assert.Contains(t, out.String(), "\n", "pretty output is multi-line")
	assert.Contains(t, out.String(), `"name"`)
}

func TestPrinter_JSON_Compact(t *testing.T) {
	p, out, _ := newTestPrinter()

	p.JSON(gjson.Parse("{ \"name\" : \"Ops\" }"), false)

	assert.Equal(t, "{\"name\":\"Ops\"}\n", out.String())
}

func TestPrinter_JSON_PlainTextResult(t *testing.T) {
	p, out, _ := newTestPrinter()

	p.JSON(gjson.Result{Type: gjson.String, Str: "plain body"}, true)

	assert.Equal(t, "plain body\n", out.String())
}

func TestPrinter_Table_RendersColumnsAndMissingFields(t *testing.T) {
	p, out, _ := newTestPrinter()
	records := gjson.Parse(`[
		{"teamId": "t-1", "name": "Ops"},
		{"teamId": "t-2"}
	]`).Array()

	p.Table(records, []string{"teamId", "name"}, "Teams")

	got := out.String()
	assert.Contains(t, got, "Teams")
	assert.Contains(t, got, "t-1")
	assert.Contains(t, got, "Ops")
	assert.Contains(t, got, "t-2")
}

func TestPrinter_StatusLinesGoToErr(t *testing.T) {
	p, out, errOut := newTestPrinter()

	p.Success("team created")
	p.Errorf("boom: %s", "details")
	p.Dim("resolved 'Ops' -> t-1")

	assert.Empty(t, out.String(), "status lines must not pollute piped JSON")
	assert.Contains(t, errOut.String(), "team created")
	assert.Contains(t, errOut.String(), "boom: details")
	assert.Contains(t, errOut.String(), "resolved")
}
