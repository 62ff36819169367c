package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/model"
)

// RephraseRequest asks for an SEO-unique rewording of a USP text.
type RephraseRequest struct {
	Title       string
	Paragraph1  string
	Paragraph2  string
	ProductName string
	Context     string
}

// RephraseResult is the reworded text plus a short change summary.
type RephraseResult struct {
	Title          string `json:"title"`
	Paragraph1     string `json:"paragraph_1"`
	Paragraph2     string `json:"paragraph_2"`
	ChangesSummary string `json:"changes_summary"`
}

// RephraseUsp rewords a USP so the meaning survives but the wording is
// unique across product pages.
func (e *Extractor) RephraseUsp(ctx context.Context, req RephraseRequest) (*RephraseResult, error) {
	if req.Title == "" || req.Paragraph1 == "" {
		return nil, eris.New("extract: title and first paragraph are required")
	}

	resp, err := e.complete(ctx, "rephrase", newMessageRequest(e, 1000, rephrasePrompt(req)))
	if err != nil {
		return nil, err
	}

	var result RephraseResult
	if err := unmarshalJSONBlock(resp.Text(), &result); err != nil {
		return nil, err
	}
	if result.Title == "" || result.Paragraph1 == "" {
		return nil, eris.New("extract: rephrase response missing title or paragraph")
	}

	zap.L().Debug("usp rephrased",
		zap.String("original_title", req.Title),
		zap.String("new_title", result.Title),
	)
	return &result, nil
}

// RephraseBlock adapts RephraseUsp to the duplicate-resolution flow. The
// returned block keeps the input's id and image; the flow replaces the id
// itself.
func (e *Extractor) RephraseBlock(ctx context.Context, b model.UspBlock, productName string) (model.UspBlock, error) {
	result, err := e.RephraseUsp(ctx, RephraseRequest{
		Title:       b.Title,
		Paragraph1:  b.Paragraph1,
		Paragraph2:  b.Paragraph2,
		ProductName: productName,
	})
	if err != nil {
		return model.UspBlock{}, err
	}

	b.Title = result.Title
	b.Paragraph1 = result.Paragraph1
	if b.Paragraph2 != "" {
		b.Paragraph2 = result.Paragraph2
	}
	return b, nil
}

func rephrasePrompt(req RephraseRequest) string {
	var b strings.Builder
	b.WriteString(`Fogalmazd át az alábbi USP (Unique Selling Point) szöveget úgy, hogy:
1. Megtartja az eredeti jelentést és üzenetet
2. Teljesen más szavakat és mondatszerkezetet használ
3. SEO szempontból egyedi legyen (ne legyen duplicate content)
4. Megőrzi a marketing stílust és meggyőző hangvételt
5. Hasonló hosszúságú marad
`)
	if req.ProductName != "" {
		fmt.Fprintf(&b, "\nTermék: %s", req.ProductName)
	}
	if req.Context != "" {
		fmt.Fprintf(&b, "\nKontextus: %s", req.Context)
	}
	fmt.Fprintf(&b, "\n\nEREDETI USP:\nCím: %s\n1. bekezdés: %s", req.Title, req.Paragraph1)
	if req.Paragraph2 != "" {
		fmt.Fprintf(&b, "\n2. bekezdés: %s", req.Paragraph2)
	}
	b.WriteString("\n\nVÁLASZOLJ KIZÁRÓLAG JSON FORMÁTUMBAN:\n{\n  \"title\": \"Átfogalmazott cím - max 60 karakter\",\n  \"paragraph_1\": \"Átfogalmazott első bekezdés\",\n")
	if req.Paragraph2 != "" {
		b.WriteString("  \"paragraph_2\": \"Átfogalmazott második bekezdés\",\n")
	}
	b.WriteString("  \"changes_summary\": \"Rövid összefoglaló a változtatásokról\"\n}")
	return b.String()
}
