package reviews

import (
	"context"
	"fmt"
	"log/slog"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/antzucaro/matchr"
	"github.com/go-resty/resty/v2"
	"reviewharvest/lib/htmlutil"
	"reviewharvest/lib/pageview"
	"reviewharvest/lib/telemetry"
	"reviewharvest/lib/textutil"
)

// minMatchScore is the Jaro-Winkler floor below which a search hit is
// not considered the requested company.
const minMatchScore = 0.8

// knownProducts short-circuits the search for companies whose product
// pages are stable and well known. Keys are in NormalizeName form.
var knownProducts = map[Source]map[string]string{
	SourceG2: {
		"slack":          "https://www.g2.com/products/slack",
		"zoom":           "https://www.g2.com/products/zoom",
		"salesforce":     "https://www.g2.com/products/salesforce-sales-cloud",
		"hubspot":        "https://www.g2.com/products/hubspot-marketing-hub",
		"microsoftteams": "https://www.g2.com/products/microsoft-teams",
		"asana":          "https://www.g2.com/products/asana",
		"trello":         "https://www.g2.com/products/trello",
	},
}

// Resolver finds a company's product page on a review source by
// querying the source's own search endpoint.
type Resolver struct {
	client *resty.Client
}

func NewResolver() (*Resolver, error) {
	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", pageview.DefaultUserAgent)
	client.SetHeader("accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	client.SetHeader("accept-language", "en-US,en;q=0.9")
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/reviews/resolver")

	return &Resolver{client: client}, nil
}

// Resolve returns the company's product page url on the source, or an
// empty string when no convincing match exists.
func (r *Resolver) Resolve(ctx context.Context, company string, source Source) (string, error) {
	ctx, span := tracer.Start(ctx, "Resolve")
	defer span.End()

	normalized := textutil.NormalizeName(company)
	if known, ok := knownProducts[source][normalized]; ok {
		return known, nil
	}

	profile := source.Profile()
	searchUrl := fmt.Sprintf("%s?query=%s", profile.SearchUrl, url.QueryEscape(company))

	res, err := r.client.R().SetContext(ctx).Get(searchUrl)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("search %s: %w", source, err)
	}
	if res.StatusCode() >= 400 {
		return "", fmt.Errorf("search %s: status %d", source, res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.String()))
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("parse search results: %w", err)
	}

	base, err := url.Parse(profile.BaseUrl)
	if err != nil {
		return "", err
	}
	anchors := htmlutil.GetAnchors(ctx, base, doc.Find("a"))

	bestUrl := ""
	bestScore := 0.0
	for _, anchor := range anchors {
		if !strings.Contains(anchor.Href, profile.ProductPath) {
			continue
		}
		candidate := textutil.NormalizeName(anchor.Name)
		if candidate == "" {
			continue
		}
		score := matchr.JaroWinkler(normalized, candidate, false)
		if textutil.MatchName(anchor.Name, []string{normalized}) && score < 1 {
			score = 1
		}
		if score > bestScore {
			bestScore = score
			bestUrl = anchor.Href
		}
	}

	if bestScore < minMatchScore {
		slog.InfoContext(ctx, "no convincing product page match",
			"company", company, "source", source, "best_score", bestScore)
		return "", nil
	}
	slog.DebugContext(ctx, "resolved company",
		"company", company, "source", source, "url", bestUrl, "score", bestScore)
	return bestUrl, nil
}
