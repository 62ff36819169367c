package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Soborbo/ventilatorhaz-leirasok/internal/model"
	"github.com/Soborbo/ventilatorhaz-leirasok/pkg/anthropic"
)

// Duct diameter baked into the product name, e.g. "AXC 100" or "Elix 150T".
var productSizeRe = regexp.MustCompile(`\b(80|100|120|125|150|160|200|250|315|350|400|450|500)\b`)

// manufacturerDomains prioritizes official sites per brand; unknown brands
// fall back to guessed .com/.it/.de domains.
var manufacturerDomains = map[string][]string{
	"Elicent":  {"elicent.it", "elicent.com"},
	"Maico":    {"maico-ventilatoren.com", "maico.de"},
	"Blauberg": {"blaubergvento.de", "blauberg.de", "blaubergvento.com"},
	"Vents":    {"ventilation-system.com", "vents.ua", "vents.eu"},
	"Awenta":   {"awenta.pl", "awenta.com"},
	"Helios":   {"heliosventilatoren.de", "helios.de"},
	"Vortice":  {"vortice.com", "vortice.it"},
}

// UspSuggestion is one research-backed USP proposal.
type UspSuggestion struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Paragraph1    string `json:"paragraph_1"`
	Paragraph2    string `json:"paragraph_2"`
	Source        string `json:"source"`
	SourceType    string `json:"source_type"` // manufacturer, seller or inferred
	Confidence    string `json:"confidence"`
	OriginalClaim string `json:"original_claim"`
}

// SourcesSummary groups the claims the suggestions were built from.
type SourcesSummary struct {
	ManufacturerClaimsUsed []string `json:"manufacturer_claims_used"`
	SellerClaimsUsed       []string `json:"seller_claims_used"`
	InferredClaims         []string `json:"inferred_claims"`
}

// CompetitorAnalysis is the combined result of the research steps.
type CompetitorAnalysis struct {
	Suggestions      []UspSuggestion `json:"suggestions"`
	SourcesSummary   SourcesSummary  `json:"sources_summary"`
	ManufacturerData json.RawMessage `json:"manufacturer_data,omitempty"`
	CompetitorData   json.RawMessage `json:"competitor_data,omitempty"`
	ProductSizeMM    int             `json:"product_size_mm,omitempty"`
}

// AnalyzeCompetitors researches how the manufacturer and other sellers
// describe the product, then synthesizes USP suggestions from the findings.
// Manufacturer claims outrank seller claims outrank inference. The two
// research calls are independent and run concurrently.
func (e *Extractor) AnalyzeCompetitors(ctx context.Context, req Request, fields []model.ExtractedField) (*CompetitorAnalysis, error) {
	if req.ProductName == "" || req.Manufacturer == "" {
		return nil, eris.New("extract: product name and manufacturer are required")
	}

	size := productSize(req.ProductName, fields)
	sizeContext := ""
	if size > 0 {
		sizeContext = fmt.Sprintf("\nEz egy %dmm csőátmérőjű ventilátor. Csak azonos méretű (%dmm) termékeket hasonlíts!", size, size)
	}

	var manufacturerData, competitorData json.RawMessage
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		manufacturerData, err = e.researchJSON(gctx, "competitors_manufacturer", manufacturerPrompt(req, sizeContext))
		return err
	})
	g.Go(func() error {
		var err error
		competitorData, err = e.researchJSON(gctx, "competitors_sellers", sellerPrompt(req, sizeContext))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp, err := e.complete(ctx, "competitors_synthesis", newMessageRequest(e, 3000,
		synthesisPrompt(req, manufacturerData, competitorData, fields, size)))
	if err != nil {
		return nil, err
	}

	analysis := &CompetitorAnalysis{}
	if err := unmarshalJSONBlock(resp.Text(), analysis); err != nil {
		return nil, err
	}
	analysis.ManufacturerData = manufacturerData
	analysis.CompetitorData = competitorData
	analysis.ProductSizeMM = size

	zap.L().Info("competitor analysis complete",
		zap.String("product", req.ProductName),
		zap.Int("suggestions", len(analysis.Suggestions)),
		zap.Int("size_mm", size),
	)
	return analysis, nil
}

// researchJSON runs a research prompt and returns the raw JSON object from
// the response. A response without valid JSON degrades to a raw-text wrapper
// instead of failing the analysis.
func (e *Extractor) researchJSON(ctx context.Context, phase, prompt string) (json.RawMessage, error) {
	resp, err := e.complete(ctx, phase, newMessageRequest(e, 2000, prompt))
	if err != nil {
		return nil, err
	}

	text := resp.Text()
	if block := jsonBlockRe.FindString(text); block != "" && json.Valid([]byte(block)) {
		return json.RawMessage(block), nil
	}
	raw, _ := json.Marshal(map[string]string{"raw": text})
	return raw, nil
}

func newMessageRequest(e *Extractor, maxTokens int64, prompt string) anthropic.MessageRequest {
	return anthropic.MessageRequest{
		Model:     e.model,
		MaxTokens: maxTokens,
		Messages:  []anthropic.Message{{Role: "user", Content: prompt}},
	}
}

func productSize(productName string, fields []model.ExtractedField) int {
	for _, f := range fields {
		if f.Field == model.FieldDuctDiameter {
			if n, ok := model.AsNumber(f.Value); ok {
				return int(n)
			}
		}
	}
	if m := productSizeRe.FindString(productName); m != "" {
		n := 0
		fmt.Sscanf(m, "%d", &n)
		return n
	}
	return 0
}

func manufacturerSites(manufacturer string) string {
	if domains, ok := manufacturerDomains[manufacturer]; ok {
		return strings.Join(domains, ", ")
	}
	lower := strings.ToLower(manufacturer)
	return fmt.Sprintf("%s.com, %s.it, %s.de", lower, lower, lower)
}

func manufacturerPrompt(req Request, sizeContext string) string {
	return fmt.Sprintf(`Keresd meg a "%s %s" termék HIVATALOS gyártói leírását!

KERESS EZEKEN AZ OLDALAKON (fontossági sorrendben):
1. %s - A GYÁRTÓ HIVATALOS OLDALA (LEGFONTOSABB!)
2. A gyártó PDF adatlapja és katalógusa

MIT KERESS:
- Hogyan írja le a GYÁRTÓ a saját termékét?
- Milyen előnyöket, USP-ket emel ki a gyártó?
- Milyen célcsoportnak ajánlja?
- Milyen technológiákat/funkciókat hangsúlyoz?%s

FONTOS: A gyártó saját szavait és marketingjét keresd, ne te találd ki!

VÁLASZOLJ JSON FORMÁTUMBAN:
{
  "manufacturer_usps": [
    {
      "usp_text": "A gyártó által használt pontos USP/előny szöveg",
      "context": "Hol találtad (termékoldal/katalógus/adatlap)",
      "original_language": "eredeti nyelv ha nem magyar"
    }
  ],
  "manufacturer_highlights": ["gyártó által kiemelt fő tulajdonságok"],
  "target_audience": "A gyártó szerint kinek ajánlott",
  "key_technologies": ["említett technológiák/funkciók"],
  "source_urls": ["url ahol találtad"]
}`, req.Manufacturer, req.ProductName, manufacturerSites(req.Manufacturer), sizeContext)
}

func sellerPrompt(req Request, sizeContext string) string {
	return fmt.Sprintf(`Keresd meg hogyan árulják MÁSOK a "%s %s" terméket!

KERESS EZEKEN AZ OLDALAKON:
1. Magyar webshopok: szelep.hu, szelloztetes.hu, ventilator.hu, praktiker.hu, obi.hu, bauhaus.hu
2. Nemzetközi webshopok: amazon.de, ebay.de, conrad.de
3. Szakmai fórumok, vélemények

MIT KERESS:
- Milyen USP-ket/előnyöket használnak a forgalmazók?
- Hogyan pozicionálják a terméket?
- Mit emelnek ki a termékleírásokban?
- Milyen vásárlói vélemények vannak?%s

FONTOS: A TÉNYLEGES forgalmazói szövegeket gyűjtsd, ne te találd ki!

VÁLASZOLJ JSON FORMÁTUMBAN:
{
  "seller_usps": [
    {
      "source": "webshop/oldal neve",
      "usp_text": "Az általuk használt USP/leírás",
      "selling_angle": "milyen szemszögből adják el"
    }
  ],
  "common_selling_points": ["több helyen is előforduló érvek"],
  "unique_angles": ["egyedi megközelítések amit találtál"],
  "customer_feedback": ["vásárlói vélemények összefoglalása"]
}`, req.Manufacturer, req.ProductName, sizeContext)
}

func synthesisPrompt(req Request, manufacturerData, competitorData json.RawMessage, fields []model.ExtractedField, size int) string {
	technical := "Nincs"
	if len(fields) > 0 {
		if b, err := json.Marshal(fields); err == nil {
			technical = string(b)
		}
	}
	sizeUspContext := ""
	if size > 0 {
		sizeUspContext = fmt.Sprintf("\nMÉRET: %dmm - minden összehasonlítás csak erre a méretre vonatkozzon!", size)
	}

	return fmt.Sprintf(`A "%s %s" termékhez készíts USP javaslatokat AZ ALÁBBI KUTATÁS ALAPJÁN.

=== GYÁRTÓI INFORMÁCIÓK (LEGFONTOSABB FORRÁS) ===
%s

=== MÁS FORGALMAZÓK USP-I ===
%s

=== MŰSZAKI ADATOK ===
%s%s

FELADAT:
1. Készíts 5-8 USP javaslatot A FENTI FORRÁSOK ALAPJÁN
2. PRIORITÁS: Gyártói USP-k > Forgalmazói USP-k > Saját következtetés
3. Minden USP-nél jelöld meg a FORRÁST (gyártó/forgalmazó neve)
4. NE találj ki USP-ket - csak amit a kutatásban találtál!
5. Ha a gyártó mond valamit, az a legmegbízhatóbb

VÁLASZOLJ JSON FORMÁTUMBAN:
{
  "suggestions": [
    {
      "id": "UNIQUE_ID",
      "title": "USP cím (max 60 karakter)",
      "paragraph_1": "Első bekezdés - az előny kifejtése (2-3 mondat)",
      "paragraph_2": "Második bekezdés - gyakorlati haszon (2-3 mondat)",
      "source": "GYÁRTÓ/forgalmazó neve/következtetett",
      "source_type": "manufacturer/seller/inferred",
      "confidence": "high/medium/low",
      "original_claim": "Az eredeti állítás amit találtunk"
    }
  ],
  "sources_summary": {
    "manufacturer_claims_used": ["felhasznált gyártói állítások"],
    "seller_claims_used": ["felhasznált forgalmazói állítások"],
    "inferred_claims": ["saját következtetések (ezek kevésbé megbízhatóak)"]
  }
}`, req.Manufacturer, req.ProductName, manufacturerData, competitorData, technical, sizeUspContext)
}
