// Package catalog holds the fixed option lists and marketing copy shown by
// the portal. Nothing here changes at runtime.
package catalog

// Option is a selectable value with its display label
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// BusinessCategories are the eight business category tags
var BusinessCategories = []Option{
	{Value: "restaurant", Label: "Restaurant & Food"},
	{Value: "retail", Label: "Retail & E-commerce"},
	{Value: "service", Label: "Professional Services"},
	{Value: "healthcare", Label: "Healthcare"},
	{Value: "education", Label: "Education"},
	{Value: "technology", Label: "Technology"},
	{Value: "real-estate", Label: "Real Estate"},
	{Value: "other", Label: "Other"},
}

// BusinessSizes are the four headcount bands
var BusinessSizes = []Option{
	{Value: "solo", Label: "Just me (1 person)"},
	{Value: "small", Label: "Small (2-10 employees)"},
	{Value: "medium", Label: "Medium (11-50 employees)"},
	{Value: "large", Label: "Large (51+ employees)"},
}

// CompetitionLevels describe how crowded the market is
var CompetitionLevels = []Option{
	{Value: "low", Label: "Low"},
	{Value: "medium", Label: "Medium"},
	{Value: "high", Label: "High"},
}

// CMSTypes are the supported website platforms
var CMSTypes = []Option{
	{Value: "wordpress", Label: "WordPress"},
	{Value: "shopify", Label: "Shopify"},
	{Value: "wix", Label: "Wix"},
	{Value: "squarespace", Label: "Squarespace"},
	{Value: "custom", Label: "Custom HTML/CSS"},
	{Value: "other", Label: "Other"},
}

// HostingTypes are the supported hosting arrangements
var HostingTypes = []Option{
	{Value: "shared", Label: "Shared Hosting"},
	{Value: "vps", Label: "VPS Hosting"},
	{Value: "dedicated", Label: "Dedicated Server"},
	{Value: "cloud", Label: "Cloud Hosting"},
	{Value: "managed", Label: "Managed WordPress"},
	{Value: "other", Label: "Other"},
}

// Goal is a growth goal a business can pick
type Goal struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Goals is the goal catalog, in display order
var Goals = []Goal{
	{ID: "customers", Icon: "mdi:account-group", Title: "Increase Customers", Description: "Attract more customers to your business"},
	{ID: "revenue", Icon: "mdi:currency-usd", Title: "Boost Revenue", Description: "Increase sales and profitability"},
	{ID: "seo", Icon: "mdi:magnify", Title: "Improve SEO", Description: "Rank higher in search results"},
	{ID: "social", Icon: "mdi:share-variant", Title: "Social Growth", Description: "Expand social media presence"},
	{ID: "brand", Icon: "mdi:star", Title: "Brand Awareness", Description: "Increase brand recognition"},
	{ID: "expansion", Icon: "mdi:chart-line", Title: "Market Expansion", Description: "Reach new markets or regions"},
}

// CredentialField is a placeholder input shown for an integration.
// Values typed into these are never validated or sent anywhere.
type CredentialField struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Secret bool   `json:"secret"`
}

// Integration is a third-party service the engine offers to connect
type Integration struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Icon        string            `json:"icon"`
	Color       string            `json:"color"`
	Description string            `json:"description"`
	Credentials []CredentialField `json:"credentials"`
}

var (
	usernamePassword = []CredentialField{{Key: "username", Label: "Username"}, {Key: "password", Label: "Password", Secret: true}}
	emailPassword    = []CredentialField{{Key: "email", Label: "Email"}, {Key: "password", Label: "Password", Secret: true}}
)

// Integrations is the fixed list of eight integrations, in display order
var Integrations = []Integration{
	{ID: "googleSearchConsole", Name: "Google Search Console", Icon: "mdi:google", Color: "text-blue-400", Description: "SEO performance & keyword tracking", Credentials: usernamePassword},
	{ID: "googleAnalytics", Name: "Google Analytics", Icon: "mdi:google-analytics", Color: "text-orange-400", Description: "Website traffic analysis", Credentials: []CredentialField{
		{Key: "username", Label: "Username"},
		{Key: "password", Label: "Password", Secret: true},
		{Key: "trackingId", Label: "Tracking ID"},
	}},
	{ID: "gmb", Name: "Google Business Profile", Icon: "mdi:google-maps", Color: "text-green-400", Description: "Local business visibility", Credentials: emailPassword},
	{ID: "facebook", Name: "Facebook Business", Icon: "mdi:facebook", Color: "text-blue-500", Description: "Social media marketing", Credentials: emailPassword},
	{ID: "instagram", Name: "Instagram", Icon: "mdi:instagram", Color: "text-pink-400", Description: "Visual content marketing", Credentials: usernamePassword},
	{ID: "twitter", Name: "X (Twitter)", Icon: "mdi:twitter", Color: "text-gray-300", Description: "Real-time engagement", Credentials: emailPassword},
	{ID: "linkedin", Name: "LinkedIn", Icon: "mdi:linkedin", Color: "text-blue-600", Description: "B2B networking", Credentials: emailPassword},
	{ID: "emailMarketing", Name: "Email Marketing", Icon: "mdi:email-newsletter", Color: "text-purple-400", Description: "Mailchimp, SendGrid, etc.", Credentials: []CredentialField{
		{Key: "provider", Label: "Provider"},
		{Key: "apiKey", Label: "API Key", Secret: true},
	}},
}

// Contains reports whether value is one of the options
func Contains(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Label returns the display label for value, or value itself when unknown
func Label(options []Option, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// GoalByID looks up a goal
func GoalByID(id string) (Goal, bool) {
	for _, g := range Goals {
		if g.ID == id {
			return g, true
		}
	}
	return Goal{}, false
}

// IntegrationByID looks up an integration
func IntegrationByID(id string) (Integration, bool) {
	for _, i := range Integrations {
		if i.ID == id {
			return i, true
		}
	}
	return Integration{}, false
}

// HasCredential reports whether key is a placeholder field of the integration
func (i Integration) HasCredential(key string) bool {
	for _, c := range i.Credentials {
		if c.Key == key {
			return true
		}
	}
	return false
}
