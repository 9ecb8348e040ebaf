package importer

import "strings"

// CategoryRule maps a budget category to the keywords that select it.
type CategoryRule struct {
	Category string
	Keywords []string
}

// DefaultCategoryRules is the built-in keyword table. Order is
// significant: the first rule whose keyword matches wins, which keeps
// category resolution deterministic across runs. Keep broad keywords
// (like "insurance") inside the category that should own them.
var DefaultCategoryRules = []CategoryRule{
	{"Housing", []string{
		"rent", "mortgage", "hoa", "homeowner", "property tax", "landlord",
		"apartment", "lease", "housing",
	}},
	{"Utilities", []string{
		"electric", "gas bill", "water bill", "sewer", "internet", "wifi",
		"comcast", "xfinity", "verizon", "t-mobile", "tmobile", "at&t",
		"att", "spectrum", "cox", "utility", "phone bill", "cellphone",
		"sprint", "cricket", "mint mobile",
		// Subscriptions and SaaS land here: no separate budget category
		"openai", "chatgpt", "microsoft", "apple.com/bill", "apple.com/one",
		"linkedin", "cloudflare", "adobe", "dropbox", "notion", "figma",
		"canva", "grammarly", "1password", "nordvpn", "expressvpn",
		"google one", "google storage", "icloud",
		// Streaming
		"netflix", "hulu", "disney+", "disney plus", "hbo", "spotify",
		"apple music", "youtube premium", "amazon prime", "paramount",
		"peacock", "crunchyroll", "audible",
	}},
	{"Food", []string{
		"grocery", "groceries", "walmart", "target", "costco", "kroger",
		"aldi", "trader joe", "whole foods", "safeway", "publix", "heb",
		"food lion", "wegmans", "shoprite", "meijer", "sam's club",
		"restaurant", "mcdonald", "starbucks", "chipotle", "chick-fil-a",
		"subway", "wendy", "taco bell", "pizza", "doordash", "uber eats",
		"ubereats", "grubhub", "postmates", "instacart", "seamless",
		"dining", "cafe", "coffee", "diner", "burger", "sushi",
		"panera", "domino", "papa john", "five guys", "popeyes",
		"chili", "applebee", "olive garden", "ihop", "waffle house",
		"dunkin", "panda express", "wingstop", "bakery", "deli",
		"smoothie", "juice",
	}},
	{"Transportation", []string{
		"gas station", "shell oil", "exxon", "chevron", "bp ", "marathon",
		"sunoco", "circle k", "wawa", "speedway", "racetrac", "quiktrip",
		"fuel", "gasoline", "uber trip", "lyft", "taxi", "parking",
		"toll", "ezpass", "transit", "metro", "bus fare", "train",
		"car wash", "autozone", "jiffy lube", "oil change", "tire",
		"car payment", "auto loan",
	}},
	{"Entertainment", []string{
		"movie", "cinema", "theater", "amc ", "regal", "concert",
		"ticket", "ticketmaster", "stubhub", "gaming", "steam",
		"playstation", "xbox", "nintendo", "bar ", "nightclub",
		"bowling", "golf", "gym", "fitness", "planet fitness", "equinox",
		"kindle",
		// Shopping: clothes, personal items, online orders
		"amazon", "amzn", "tjmaxx", "tj maxx", "marshalls", "ross",
		"nordstrom", "macys", "zara", "h&m", "old navy", "gap ",
		"nike", "adidas", "sephora", "ulta", "bath & body", "victoria",
		"etsy", "ebay", "wish.com", "shein",
	}},
	{"Health", []string{
		"pharmacy", "cvs", "walgreens", "rite aid", "doctor", "medical",
		"hospital", "clinic", "dental", "dentist", "vision", "optometrist",
		"health insurance", "copay", "prescription", "lab", "urgent care",
		"therapy", "mental health", "dermatolog",
		"insurance", "geico", "progressive", "state farm", "allstate",
	}},
	// Debt and loan payments have no budget category so the budget
	// fallback routes them to Other regardless.
	{"Other", []string{
		"student loan", "dept education", "student ln", "capital one",
	}},
	{"Savings/Investments", []string{
		"transfer to savings", "investment", "fidelity", "vanguard",
		"schwab", "robinhood", "coinbase inc", "acorns", "stash capital",
		"fundrise", "wealthfront", "betterment", "401k", "ira ", "brokerage",
	}},
}

// FallbackCategory is returned when no keyword matches or the matched
// category is absent from the user's budget taxonomy.
const FallbackCategory = "Other"

// Categorizer maps free-text transaction descriptions to budget
// categories. Rules are injected at construction so callers (and tests)
// can substitute their own tables; nil falls back to the defaults.
type Categorizer struct {
	rules      []CategoryRule
	budgetCats map[string]bool
}

// NewCategorizer builds a categorizer from an ordered rule table and an
// optional list of the user's actual budget categories. When the list
// is non-empty, matches outside it degrade to FallbackCategory.
func NewCategorizer(rules []CategoryRule, budgetCategories []string) *Categorizer {
	if rules == nil {
		rules = DefaultCategoryRules
	}
	c := &Categorizer{rules: rules}
	if len(budgetCategories) > 0 {
		c.budgetCats = make(map[string]bool, len(budgetCategories))
		for _, name := range budgetCategories {
			c.budgetCats[name] = true
		}
	}
	return c
}

// Categorize returns the first category whose keyword appears in the
// description (case-insensitive substring match).
func (c *Categorizer) Categorize(description string) string {
	desc := strings.ToLower(description)
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(desc, kw) {
				if c.budgetCats != nil && !c.budgetCats[rule.Category] {
					return FallbackCategory
				}
				return rule.Category
			}
		}
	}
	return FallbackCategory
}
