// ABOUTME: Synthetic-data generator node: produces a sequence of values for a requested category.
// ABOUTME: Bounds apply to numeric and length-bounded categories; the node is always ready to execute.
package flow

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

// mockTypeNames maps catalog type names to generator categories.
var mockTypeNames = map[string]string{
	"mock":          "word",
	"mock_text":     "text",
	"mock_word":     "word",
	"mock_sentence": "sentence",

	"mock_first_names": "first_name",
	"mock_last_names":  "last_name",
	"mock_full_names":  "full_name",
	"mock_emails":      "email",
	"mock_phones":      "phone",
	"mock_ages":        "age",

	"mock_integers": "integer",
	"mock_floats":   "float",
	"mock_booleans": "boolean",

	"mock_dates":     "date",
	"mock_datetimes": "datetime",

	"mock_addresses": "address",
	"mock_cities":    "city",
	"mock_countries": "country",
	"mock_zipcodes":  "zipcode",

	"mock_urls":      "url",
	"mock_usernames": "username",
	"mock_passwords": "password",

	"mock_uuids":                 "uuid",
	"mock_programming_languages": "programming_language",
	"mock_databases":             "database",
	"mock_operating_systems":     "os",
}

var (
	mockWords      = []string{"river", "stone", "harbor", "lantern", "meadow", "signal", "copper", "willow", "ember", "drift", "vault", "prairie", "anchor", "cinder", "grove", "summit"}
	mockFirstNames = []string{"Ada", "Bruno", "Clara", "Diego", "Elena", "Felix", "Greta", "Hugo", "Iris", "Jonas", "Kira", "Lars", "Mona", "Nils", "Olga", "Piet"}
	mockLastNames  = []string{"Aldridge", "Barros", "Castellan", "Dvorak", "Eklund", "Fontaine", "Garrity", "Halvorsen", "Ibarra", "Jansen", "Kowalski", "Lindqvist", "Moreau", "Novak", "Okafor", "Petrov"}
	mockCities     = []string{"Porto Verde", "Northgate", "Eastmere", "Sable Point", "Kingsford", "Ravenna", "Oakhaven", "Silverton", "Marwick", "Thornbury"}
	mockCountries  = []string{"Norway", "Portugal", "Japan", "Canada", "Chile", "Kenya", "Austria", "Vietnam", "Iceland", "Uruguay"}
	mockStreets    = []string{"Alder St", "Birch Ave", "Cedar Rd", "Dover Ln", "Elm Blvd", "Foxglove Way"}
	mockDomains    = []string{"example.com", "example.org", "example.net", "mail.test", "web.test"}
	mockLanguages  = []string{"Go", "Python", "Rust", "TypeScript", "Kotlin", "Elixir", "C", "Zig", "Ruby", "Swift"}
	mockDatabases  = []string{"PostgreSQL", "SQLite", "MySQL", "Redis", "MongoDB", "CockroachDB", "ClickHouse"}
	mockOSes       = []string{"Linux", "macOS", "Windows", "FreeBSD", "OpenBSD", "illumos"}
)

// MockNode generates a sequence of synthetic values of a configured
// category. Size and the optional min/max bounds come from input ports
// when linked or set, falling back to the configured defaults, so the node
// always reports itself ready regardless of upstream connections.
type MockNode struct {
	BaseNode
	category string
	size     int
	min, max int
	rng      *rand.Rand
}

// NewMockNode creates a generator registered under typeName producing the
// given category with a default sequence size.
func NewMockNode(typeName, category string, size int) *MockNode {
	n := &MockNode{
		BaseNode: NewBaseNode(typeName, "Mock ("+category+")"),
		category: category,
		size:     size,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	n.AddInput("size", "number")
	n.AddInput("min_length", "number")
	n.AddInput("max_length", "number")
	n.AddOutput("mock_data", "list")
	n.Properties()["data_type"] = category
	n.Properties()["size"] = size
	return n
}

// Category returns the configured data category.
func (n *MockNode) Category() string { return n.category }

// Seed re-seeds the generator for reproducible sequences in tests.
func (n *MockNode) Seed(seed uint64) {
	n.rng = rand.New(rand.NewPCG(seed, seed))
}

// CanExecute always holds; defaults stand in for any missing configuration.
func (n *MockNode) CanExecute() bool { return true }

// Process generates the configured number of values and publishes them on
// "mock_data".
func (n *MockNode) Process() bool {
	size := n.size
	if v, isInt := asInt(n.InputValue("size")); isInt && v > 0 {
		size = v
	}
	minVal, hasMin := asInt(n.InputValue("min_length"))
	maxVal, hasMax := asInt(n.InputValue("max_length"))
	if !hasMin {
		minVal, _ = asInt(n.Properties()["min_length"])
		hasMin = minVal != 0
	}
	if !hasMax {
		maxVal, _ = asInt(n.Properties()["max_length"])
		hasMax = maxVal != 0
	}

	data := make([]any, 0, size)
	for i := 0; i < size; i++ {
		data = append(data, n.generate(minVal, maxVal, hasMin, hasMax))
	}
	n.SetOutputValue("mock_data", data)
	return true
}

// generate produces one value of the configured category. Bounds apply to
// numeric and length-bounded categories and are otherwise ignored.
func (n *MockNode) generate(minVal, maxVal int, hasMin, hasMax bool) any {
	r := n.rng
	pick := func(list []string) string { return list[r.IntN(len(list))] }

	switch n.category {
	case "text":
		return n.boundedText(8+r.IntN(8), minVal, maxVal, hasMin, hasMax)
	case "word":
		w := pick(mockWords)
		if hasMax && len(w) > maxVal {
			w = w[:maxVal]
		}
		return w
	case "sentence":
		s := n.boundedText(5+r.IntN(5), 0, maxVal, false, hasMax)
		return strings.ToUpper(s[:1]) + s[1:] + "."
	case "first_name":
		return pick(mockFirstNames)
	case "last_name":
		return pick(mockLastNames)
	case "full_name":
		return pick(mockFirstNames) + " " + pick(mockLastNames)
	case "email":
		return strings.ToLower(pick(mockFirstNames)) + "." + strings.ToLower(pick(mockLastNames)) + "@" + pick(mockDomains)
	case "phone":
		return fmt.Sprintf("+1-%03d-%03d-%04d", 200+r.IntN(800), r.IntN(1000), r.IntN(10000))
	case "age":
		return n.boundedInt(minVal, maxVal, hasMin, hasMax, 18, 80)
	case "integer":
		return n.boundedInt(minVal, maxVal, hasMin, hasMax, 1, 100)
	case "float":
		lo, hi := 0.0, 100.0
		if hasMin {
			lo = float64(minVal)
		}
		if hasMax {
			hi = float64(maxVal)
		}
		if hi <= lo {
			hi = lo + 1
		}
		return float64(int((lo+r.Float64()*(hi-lo))*100)) / 100
	case "date":
		return n.randomTime().Format("2006-01-02")
	case "datetime":
		return n.randomTime().Format(time.RFC3339)
	case "address":
		return fmt.Sprintf("%d %s, %s", 1+r.IntN(9999), pick(mockStreets), pick(mockCities))
	case "city":
		return pick(mockCities)
	case "country":
		return pick(mockCountries)
	case "zipcode":
		return fmt.Sprintf("%05d", r.IntN(100000))
	case "url":
		return "https://" + pick(mockDomains) + "/" + pick(mockWords)
	case "username":
		return strings.ToLower(pick(mockFirstNames)) + fmt.Sprintf("%02d", r.IntN(100))
	case "password":
		length := 12
		if hasMax && maxVal > 0 {
			length = maxVal
		}
		return n.randomPassword(length)
	case "uuid":
		return uuid.NewString()
	case "boolean":
		return r.IntN(2) == 0
	case "programming_language":
		return pick(mockLanguages)
	case "database":
		return pick(mockDatabases)
	case "os":
		return pick(mockOSes)
	default:
		return pick(mockWords)
	}
}

// boundedText builds a words-separated string padded to minLen and
// truncated to maxLen when bounds apply.
func (n *MockNode) boundedText(wordCount, minLen, maxLen int, hasMin, hasMax bool) string {
	parts := make([]string, 0, wordCount)
	for i := 0; i < wordCount; i++ {
		parts = append(parts, mockWords[n.rng.IntN(len(mockWords))])
	}
	s := strings.Join(parts, " ")
	for hasMin && len(s) < minLen {
		s += " " + mockWords[n.rng.IntN(len(mockWords))]
	}
	if hasMax && maxLen > 0 && len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}

func (n *MockNode) boundedInt(minVal, maxVal int, hasMin, hasMax bool, defLo, defHi int) int {
	lo, hi := defLo, defHi
	if hasMin {
		lo = minVal
	}
	if hasMax {
		hi = maxVal
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo + n.rng.IntN(hi-lo+1)
}

func (n *MockNode) randomTime() time.Time {
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
	end := time.Now().Unix()
	return time.Unix(start+n.rng.Int64N(end-start), 0).UTC()
}

func (n *MockNode) randomPassword(length int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%"
	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[n.rng.IntN(len(alphabet))]
	}
	return string(b)
}
