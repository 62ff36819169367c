package extract

import (
	"encoding/json"
	"regexp"

	"github.com/rotisserie/eris"
)

// The model is told to answer with JSON only, but occasionally wraps it in
// prose or a code fence. Grab the outermost object.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// unmarshalJSONBlock finds the first JSON object in text and unmarshals it
// into out.
func unmarshalJSONBlock(text string, out any) error {
	block := jsonBlockRe.FindString(text)
	if block == "" {
		return eris.New("extract: no JSON object in model response")
	}
	if err := json.Unmarshal([]byte(block), out); err != nil {
		return eris.Wrap(err, "extract: parse model response")
	}
	return nil
}
