// Package extract runs the LLM-backed steps of the wizard: datasheet field
// extraction, competitor research and USP rephrasing.
package extract

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/model"
	"github.com/Soborbo/ventilatorhaz-leirasok/internal/resilience"
	"github.com/Soborbo/ventilatorhaz-leirasok/pkg/anthropic"
)

// maxInlineDocChars caps HTML datasheet content passed inline to the model.
const maxInlineDocChars = 15000

// extractionPrompt instructs the model to pull the technical fields out of a
// datasheet. Responses are JSON only; every field carries a status and source.
const extractionPrompt = `Te egy szakértő termékadatlap elemző vagy. A feladatod, hogy kinyerd a ventilátor termék műszaki adatait az adatlapból.

A következő mezőket keresd:

KÖTELEZŐ (próbáld megtalálni):
- zajszint_db: Zajszint decibelben (dB vagy dB(A))
- legszallitas_m3h: Légszállítás m³/h-ban
- teljesitmeny_w: Teljesítményfelvétel wattban
- ip_vedelem: IP védettségi besorolás (pl. IP44, IPX4, IP65)
- csoatmero_mm: Csőátmérő mm-ben (gyakran a terméknévben van, pl. "100" a 100mm-es csőhöz)

OPCIONÁLIS (ha megtalálod):
- nyomas_pa: Nyomás Pascal-ban (Pa)
- csapagy_tipus: "golyóscsapágy" vagy "siklócsapágy" (keress: ball bearing, golyóscsapágy, hosszú élettartam csapágy)
- visszacsapo_szelep: true/false (van-e visszacsapó szelep)
- elettartam_ora: Élettartam órában
- aramfelvetel_a: Áramfelvétel amperban
- fordulatszam_rpm: Fordulatszám RPM-ben
- funkciok: tömb ezekből: "alapjárat", "időrelé", "páraérzékelő", "mozgásérzékelő", "légminőség-érzékelő"
- konnyu_tisztitas: true ha említik a könnyű tisztíthatóságot
- antisztatikus: true ha antisztatikus műanyag
- fedett_lapat: true ha fedett/takarólapátos kialakítás
- min_uzemi_homerseklet: Minimum üzemi hőmérséklet °C
- max_uzemi_homerseklet: Maximum üzemi hőmérséklet °C

Minden mezőhöz add meg:
1. A kinyert értéket
2. A státuszt:
   - "biztos": Az érték explicit szerepel az adatlapon
   - "kovetkeztetett": Az értéket logikailag következtetted (pl. "Long Life csapágy" → golyóscsapágy)
   - "hianyzo": Nem található az adatlapon
3. A forrást: Hol találtad (pl. "Műszaki adatok táblázat", "1. oldal fejléc")

VÁLASZOLJ KIZÁRÓLAG VALID JSON FORMÁTUMBAN, semmilyen más szöveget ne írj:
{
  "extracted": [
    { "field": "zajszint_db", "value": 32, "status": "biztos", "source": "Műszaki adatok táblázat" },
    ...
  ],
  "warnings": ["opcionális figyelmeztetések, ha vannak"]
}`

// Options configures an Extractor.
type Options struct {
	Model             string
	MaxTokens         int64
	RequestsPerMinute int
	HTTPTimeout       time.Duration
	MaxPDFBytes       int64
}

// Extractor calls Anthropic with a shared rate limiter so parallel wizard
// steps stay inside the account's request budget.
type Extractor struct {
	client      anthropic.Client
	httpClient  *http.Client
	limiter     *rate.Limiter
	model       string
	maxTokens   int64
	maxPDFBytes int64
	retry       resilience.RetryConfig
}

// New creates an Extractor.
func New(client anthropic.Client, opts Options) *Extractor {
	if opts.Model == "" {
		opts.Model = "claude-sonnet-4-5-20250929"
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 2000
	}
	if opts.RequestsPerMinute <= 0 {
		opts.RequestsPerMinute = 20
	}
	if opts.HTTPTimeout <= 0 {
		opts.HTTPTimeout = 30 * time.Second
	}
	if opts.MaxPDFBytes <= 0 {
		opts.MaxPDFBytes = 20 * 1024 * 1024
	}
	return &Extractor{
		client:      client,
		httpClient:  &http.Client{Timeout: opts.HTTPTimeout},
		limiter:     rate.NewLimiter(rate.Limit(float64(opts.RequestsPerMinute)/60.0), 1),
		model:       opts.Model,
		maxTokens:   opts.MaxTokens,
		maxPDFBytes: opts.MaxPDFBytes,
		retry:       resilience.DefaultRetryConfig(),
	}
}

// Request identifies the product and optionally points at its datasheet.
type Request struct {
	ProductName  string
	Manufacturer string
	Category     model.Category
	DatasheetURL string
	PriceHUF     float64
}

// Result carries the extracted fields plus operator-facing warnings.
type Result struct {
	Fields   []model.ExtractedField
	Warnings []string
}

// extractionResponse is the JSON shape the model is instructed to return.
type extractionResponse struct {
	Extracted []model.ExtractedField `json:"extracted"`
	Warnings  []string               `json:"warnings"`
}

// ExtractDatasheet fetches the datasheet behind req.DatasheetURL and asks the
// model for the technical fields. The product name, manufacturer, category
// and price are recorded as confirmed fields regardless of the datasheet. A
// fetch or processing failure degrades to base fields plus a warning instead
// of failing the whole step.
func (e *Extractor) ExtractDatasheet(ctx context.Context, req Request) (*Result, error) {
	if req.ProductName == "" || req.Manufacturer == "" || req.Category == "" {
		return nil, eris.New("extract: product name, manufacturer and category are required")
	}
	if !req.Category.Valid() {
		return nil, eris.Errorf("extract: unknown category %q", req.Category)
	}

	base := []model.ExtractedField{
		{Field: model.FieldProductName, Value: req.ProductName, Status: model.StatusConfirmed},
		{Field: model.FieldManufacturer, Value: req.Manufacturer, Status: model.StatusConfirmed},
		{Field: model.FieldCategory, Value: string(req.Category), Status: model.StatusConfirmed},
	}
	if req.PriceHUF > 0 {
		base = append(base, model.ExtractedField{
			Field: model.FieldPriceHUF, Value: req.PriceHUF,
			Status: model.StatusConfirmed, Source: "Felhasználói input",
		})
	}

	if req.DatasheetURL == "" {
		return &Result{
			Fields:   base,
			Warnings: []string{"Nincs PDF URL megadva - csak az alapadatok kerültek mentésre. Add meg a műszaki adatokat manuálisan."},
		}, nil
	}

	parsed, err := e.extractFromURL(ctx, req)
	if err != nil {
		zap.L().Warn("datasheet processing failed, falling back to base fields",
			zap.String("url", req.DatasheetURL),
			zap.Error(err),
		)
		return &Result{
			Fields:   base,
			Warnings: []string{fmt.Sprintf("Feldolgozás sikertelen: %s. Add meg az adatokat manuálisan.", err.Error())},
		}, nil
	}

	return &Result{
		Fields:   append(base, parsed.Extracted...),
		Warnings: parsed.Warnings,
	}, nil
}

func (e *Extractor) extractFromURL(ctx context.Context, req Request) (*extractionResponse, error) {
	data, contentType, err := e.fetch(ctx, req.DatasheetURL)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf("%s\n\nTermék: %s\nGyártó: %s\nKategória: %s",
		extractionPrompt, req.ProductName, req.Manufacturer, req.Category)

	msg := anthropic.Message{Role: "user"}
	if isPDF(contentType, req.DatasheetURL) {
		msg.Content = prompt
		msg.Documents = []anthropic.Document{{Data: base64.StdEncoding.EncodeToString(data)}}
	} else {
		content := string(data)
		if len(content) > maxInlineDocChars {
			content = content[:maxInlineDocChars]
		}
		msg.Content = fmt.Sprintf("%s\n\nAdatlap tartalma:\n%s", prompt, content)
	}

	resp, err := e.complete(ctx, "extract", anthropic.MessageRequest{
		Model:     e.model,
		MaxTokens: e.maxTokens,
		Messages:  []anthropic.Message{msg},
	})
	if err != nil {
		return nil, err
	}

	var parsed extractionResponse
	if err := unmarshalJSONBlock(resp.Text(), &parsed); err != nil {
		return nil, err
	}
	return &parsed, nil
}

// complete sends a single message request with rate limiting and retry.
func (e *Extractor) complete(ctx context.Context, phase string, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	retry := e.retry
	retry.OnRetry = resilience.RetryLogger("anthropic", phase)

	resp, err := resilience.DoVal(ctx, retry, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "extract: rate limit wait")
		}
		return e.client.CreateMessage(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	resp.Usage.LogCost(e.model, phase)
	return resp, nil
}

func (e *Extractor) fetch(ctx context.Context, url string) ([]byte, string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", eris.Wrapf(err, "extract: build request for %s", url)
	}

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, "", eris.Wrapf(err, "extract: fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := eris.Errorf("extract: adatlap letöltés sikertelen: %d", resp.StatusCode)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, "", resilience.NewTransientError(err, resp.StatusCode)
		}
		return nil, "", err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, e.maxPDFBytes+1))
	if err != nil {
		return nil, "", eris.Wrapf(err, "extract: read %s", url)
	}
	if int64(len(data)) > e.maxPDFBytes {
		return nil, "", eris.Errorf("extract: datasheet exceeds %d bytes", e.maxPDFBytes)
	}

	return data, resp.Header.Get("Content-Type"), nil
}

func isPDF(contentType, url string) bool {
	return strings.Contains(contentType, "application/pdf") ||
		strings.HasSuffix(strings.ToLower(url), ".pdf")
}
