package internal

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// VendorRule points merchant descriptions matching Pattern at the vendor's
// billing page. Patterns are case-insensitive regular expressions.
type VendorRule struct {
	Pattern string `yaml:"pattern"`
	URL     string `yaml:"url"`

	// compiled pattern (not serialized)
	regex *regexp.Regexp `yaml:"-"`
}

// Config tunes vendor URL resolution and charge exclusion.
type Config struct {
	// Vendors are user billing-page rules, consulted before the built-in table.
	Vendors []VendorRule `yaml:"vendors,omitempty"`

	// Exclude lists regex patterns applied on top of DefaultExcludePatterns.
	// Charges whose description matches any pattern are dropped before
	// subscription detection.
	Exclude []string `yaml:"exclude,omitempty"`

	// compiled exclusion rules, defaults plus user patterns (not serialized)
	excludePatterns []*regexp.Regexp `yaml:"-"`
}

// DefaultExcludePatterns remove statement noise that is never a subscription
// charge: card payments, interest, and fee lines.
var DefaultExcludePatterns = []string{
	"PAYMENT - THANK YOU",
	"PURCHASE INTEREST",
	"OVERLIMIT FEE",
}

// builtinVendorURLs maps exact merchant descriptions to their billing pages.
var builtinVendorURLs = map[string]string{
	"Amazon Web Services www.amazon.ca":       "https://console.aws.amazon.com/billing/home#/paymentmethods",
	"TRELLO.COM* ATLASSIAN ATLASSIAN.COM":     "https://trello.com/login",
	"1PASSWORD TORONTO":                       "https://my.1password.com/billing",
	"ZOOM.COM 888-799-9666 ZOOM.US":           "https://zoom.us/billing",
	"MIDAS ALARM & SECURITY LT BURNABY":       "https://www.midasalarm.com/contact",
	"ADVANCED PARKING AUTO 877-909-6199":      "https://www.advancedparking.ca/contact",
	"GREENVIEW DATA INC. 888-576-4949":        "https://www.greenviewdata.com/clientarea.php",
	"CLOUD LINUX, INC CLN.CLOUDLINU":          "https://cln.cloudlinux.com/console/billing",
	"Amazon.ca Prime Member amazon.ca/pri":    "https://www.amazon.ca/mc/yourpayments",
	"SMTP2GO, I* SMTP2GO EM SMTP2GO.COM":      "https://www.smtp2go.com/settings/billing/",
	"4TE*ACCOUNTEDGE 973-586-2200":            "https://www.accountedge.com/my-account",
	"OPSSHIELD LLP KOCHI":                     "https://opsshield.com/login",
	"CLOUDFLARE CLOUDFLARE.CO":                "https://dash.cloudflare.com/billing",
	"NINJAONE, LLC NINJAONE.COM":              "https://app.ninjarmm.com/#/settings/billing",
	"GOOGLE *ADS8657284425 855-222-8603":      "https://ads.google.com/aw/billing",
	"GOOGLE*ADS8657284425 CC GOOGLE.COM":      "https://ads.google.com/aw/billing",
	"OPENAI *CHATGPT SUBSCR OPENAI.COM":       "https://platform.openai.com/settings/organization/billing/overview",
	"GOOGLE *GSUITE_neocode 855-222-8603":     "https://admin.google.com/ac/billing",
	"GOOGLE *Workspace_neoc 855-222-8603":     "https://admin.google.com/ac/billing",
	"HUBSTAFF.COM HUBSTAFF.COM":               "https://app.hubstaff.com/organizations/billing",
	"BACKBLAZE INC BACKBLAZE.COM":             "https://secure.backblaze.com/billing.htm",
	"ONEPROVIDER 5142860253":                  "https://oneprovider.com/portal/clientarea.php",
	"LINODE . AKAMAI 6093807100":              "https://cloud.linode.com/account/billing",
	"FILEMAKER 800-325-2747":                  "https://www.claris.com/account/",
	"INBOX ZERO INC. GETINBOXZERO.":           "https://www.getinboxzero.com/settings",
	"SCRAPFLY SCRAPFLY.IO":                    "https://scrapfly.io/dashboard/billing",
	"IDIGITAL INTERNET INC VANCOUVER":         "https://www.idigital.ca/clientarea.php",
	"NEW DEMOCRATIC PARTY 604-430-8600":       "https://www.ndp.ca/donate",
	"WALMART.CA MISSISSAUGA":                  "https://www.walmart.ca/account",
	"WALMART DELIVERY PASS REN MISSISSAUGA":   "https://www.walmart.ca/account",
	"STARBUCKS 8007827282 800-782-7282":       "https://www.starbucks.ca/account",
	"CS *STARBUCKS GC 877-850-1977":           "https://www.starbucks.ca/account",
	"PADDLE.NET* DECODO LONDON":               "https://vendors.paddle.com/subscriptions",
	"PADDLE.NET* SMARTPROXY LONDON":           "https://vendors.paddle.com/subscriptions",
	"PADDLE.NET* SUPERDUPER LONDON":           "https://vendors.paddle.com/subscriptions",
	"MEGA LIMITED AUCKLAND":                   "https://mega.nz/fm/account/plan",
	"SYNC 18553677962":                        "https://cp.sync.com/billing",
	"SYNC.COM* SYNC.COM TORONTO":              "https://cp.sync.com/billing",
	"TASKRABBIT* RECEIPT VANCOUVER":           "https://www.taskrabbit.com/account/payment",
	"OPENVPN SUBSCRIPTION OPENVPN.NET":        "https://myaccount.openvpn.com/",
	"Microsoft*Microsoft 365 F Mississauga":   "https://account.microsoft.com/services/",
	"ELEVENLABS.IO ELEVENLABS.IO":             "https://elevenlabs.io/app/settings/billing",
	"ANTHROPIC ANTHROPIC.COM":                 "https://console.anthropic.com/settings/billing",
	"PROTON AG* PROTON AG GENEVA":             "https://account.proton.me/u/0/mail/dashboard",
	"SSLSTORE SAINT PETERSB":                  "https://www.thesslstore.com/client/login.php",
	"CHEAPSSLWEB.COM SIGNMYCODE.CO":           "https://cheapsslweb.com/client/login.php",
	"CERTERALLC* CHEAPSSLWE SIGNMYCODE.CO":    "https://cheapsslweb.com/client/login.php",
}

// builtinVendorPatterns are substring fallbacks for vendors whose merchant
// descriptions vary between statements.
var builtinVendorPatterns = []struct {
	Contains string
	URL      string
}{
	{"CPANEL", "https://store.cpanel.net/view-invoice"},
	{"Audible", "https://www.audible.ca/account/payments"},
	{"GODADDY", "https://account.godaddy.com/billing"},
	{"FS *", "https://fsprg.com/account"},
}

// DefaultConfigPath returns the default config file location
// (~/.subscription-updater/config.yaml), or "" when the home directory is
// unknown.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".subscription-updater", "config.yaml")
}

// NewDefaultConfig creates a config with only the default exclusion patterns
// compiled. Use this when no config file exists.
func NewDefaultConfig() (*Config, error) {
	cfg := &Config{}
	if err := cfg.compile(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads and compiles a YAML config file. The default exclusion
// patterns always apply; user patterns are added on top.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.compile(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// compile builds the regex fields from the serialized rule lists.
func (c *Config) compile() error {
	for i := range c.Vendors {
		re, err := regexp.Compile("(?i)" + c.Vendors[i].Pattern)
		if err != nil {
			return fmt.Errorf("invalid vendor pattern %q: %w", c.Vendors[i].Pattern, err)
		}
		c.Vendors[i].regex = re
	}

	patterns := make([]string, 0, len(DefaultExcludePatterns)+len(c.Exclude))
	patterns = append(patterns, DefaultExcludePatterns...)
	patterns = append(patterns, c.Exclude...)
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		c.excludePatterns = append(c.excludePatterns, re)
	}
	return nil
}

// FilterExcluded drops charges whose raw description matches an exclusion
// pattern, returning the kept charges and the excluded count.
func (c *Config) FilterExcluded(txs []Transaction) ([]Transaction, int) {
	if c == nil || len(c.excludePatterns) == 0 {
		return txs, 0
	}

	var kept []Transaction
	excluded := 0
	for _, tx := range txs {
		if c.shouldExclude(tx.Merchant) {
			excluded++
			continue
		}
		kept = append(kept, tx)
	}
	return kept, excluded
}

// shouldExclude returns true if the description matches any exclusion pattern.
func (c *Config) shouldExclude(desc string) bool {
	for _, re := range c.excludePatterns {
		if re.MatchString(desc) {
			return true
		}
	}
	return false
}

// VendorURL resolves the billing page for a merchant. User rules win over
// the built-in exact-name table, which wins over the built-in substring
// rules. Merchants nobody knows get a Google search for their billing page.
func (c *Config) VendorURL(merchant string) string {
	if c != nil {
		for i := range c.Vendors {
			if c.Vendors[i].regex != nil && c.Vendors[i].regex.MatchString(merchant) {
				return c.Vendors[i].URL
			}
		}
	}

	if u, ok := builtinVendorURLs[merchant]; ok {
		return u
	}
	for _, rule := range builtinVendorPatterns {
		if strings.Contains(merchant, rule.Contains) {
			return rule.URL
		}
	}

	return googleSearchURL(merchant + " billing payment method")
}

// googleSearchURL builds a Google search link for the given query.
func googleSearchURL(query string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(query)
}
