// Package analizy fetches fund quotation histories from the analizy.pl
// quotation API and turns them into fundval market data.
//
// It is a thin acquisition adapter: once the market is materialized the
// valuation engine never talks to the network again.
package analizy

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/fundval"
	"github.com/etnz/fundval/date"
	"github.com/shopspring/decimal"
)

const quotationAPI = "https://www.analizy.pl/api/quotation"

// Source identifies one fund on the analizy.pl portal, derived from the fund
// page URL the user configures.
type Source struct {
	URL              string
	Category         string // e.g. "fundusze-inwestycyjne-otwarte"
	ID               string // e.g. "ABC123"
	Name             string // human readable, from the URL slug
	CategoryShortcut string // initials of the category words, used by the API
}

// ParseURL breaks a fund page URL down into its source identity.
//
// A fund URL looks like
// https://www.analizy.pl/<category>/<fund id>/<fund-name-slug>.
func ParseURL(fundURL string) (Source, error) {
	parts := strings.Split(fundURL, "/")
	if len(parts) < 6 || parts[3] == "" || parts[4] == "" || parts[5] == "" {
		return Source{}, fmt.Errorf("invalid fund URL %q: want https://host/category/id/name", fundURL)
	}
	category := parts[3]
	shortcut := ""
	for _, word := range strings.Split(category, "-") {
		if word != "" {
			shortcut += word[:1]
		}
	}
	name := titleCase(strings.ReplaceAll(parts[5], "-", " "))
	return Source{
		URL:              fundURL,
		Category:         category,
		ID:               parts[4],
		Name:             name,
		CategoryShortcut: shortcut,
	}, nil
}

// Fetch downloads the full quotation history of the fund.
func (s Source) Fetch(client *http.Client) (*fundval.Fund, error) {
	addr := fmt.Sprintf("%s/%s/%s", quotationAPI, s.CategoryShortcut, s.ID)

	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("cannot fetch quotations of %q: %w", s.ID, err)
	}

	currency, err := jstring(jobj, "$.currency")
	if err != nil {
		return nil, fmt.Errorf("cannot read currency of %q: %w", s.ID, err)
	}

	jprices, err := jsonpath.Get("$.series[0].price", jobj)
	if err != nil {
		return nil, fmt.Errorf("cannot read quotation series of %q: %w", s.ID, err)
	}
	list, ok := jprices.([]any)
	if !ok {
		return nil, fmt.Errorf("quotation series of %q is not a list", s.ID)
	}

	fund := fundval.NewFund(s.ID, s.Name, currency)
	for _, item := range list {
		point, ok := item.(map[string]any)
		if !ok {
			continue
		}
		on, err := date.Parse(fmt.Sprint(point["date"]))
		if err != nil {
			return nil, fmt.Errorf("bad quotation date for %q: %w", s.ID, err)
		}
		price, err := jdecimal(point["value"])
		if err != nil {
			return nil, fmt.Errorf("bad quotation value for %q on %s: %w", s.ID, on, err)
		}
		fund.Append(on, price)
	}
	if fund.Len() == 0 {
		return nil, fmt.Errorf("fund %q has an empty quotation history", s.ID)
	}
	return fund, nil
}

// FetchAll downloads the history of every configured fund URL into a market.
func FetchAll(client *http.Client, fundURLs []string) (*fundval.Market, error) {
	market := fundval.NewMarket()
	for _, u := range fundURLs {
		src, err := ParseURL(u)
		if err != nil {
			return nil, err
		}
		fund, err := src.Fetch(client)
		if err != nil {
			return nil, err
		}
		market.Add(fund)
	}
	return market, nil
}

// titleCase capitalizes each word of a URL slug turned fund name.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// jstring extracts a string value at a jsonpath.
func jstring(jobj any, path string) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("error parsing %q: %w", path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("%q is not a string: %v", path, jval)
	}
	return s, nil
}

// jdecimal reads a quotation value that the API returns either as a number
// or as a string with a comma decimal separator.
func jdecimal(jval any) (decimal.Decimal, error) {
	switch v := jval.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(v), ",", ".")
		s = strings.ReplaceAll(s, " ", "")
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return decimal.Decimal{}, fmt.Errorf("invalid number %q", v)
		}
		return decimal.NewFromString(s)
	default:
		return decimal.Decimal{}, fmt.Errorf("neither a number nor a string: %v", jval)
	}
}
