package sponsors

// builtin lists large employers that routinely sponsor work visas even when
// a posting never says so. The first entry of each row is the display name.
var builtin = [][]string{
	{"Google", "google", "alphabet"},
	{"Meta", "meta", "meta platforms", "facebook"},
	{"Amazon", "amazon", "amazon web services", "aws"},
	{"Apple", "apple", "apple inc"},
	{"Microsoft", "microsoft", "microsoft corporation"},
	{"Netflix", "netflix"},

	{"NVIDIA", "nvidia", "nvidia corporation"},
	{"Tesla", "tesla", "tesla motors", "tesla inc"},
	{"Uber", "uber", "uber technologies"},
	{"Lyft", "lyft"},
	{"Airbnb", "airbnb"},
	{"Salesforce", "salesforce", "salesforce.com"},
	{"Adobe", "adobe", "adobe systems", "adobe inc"},
	{"Oracle", "oracle", "oracle corporation", "oracle america"},
	{"Intel", "intel", "intel corporation"},
	{"Cisco", "cisco", "cisco systems"},
	{"Qualcomm", "qualcomm"},
	{"PayPal", "paypal"},
	{"Stripe", "stripe"},
	{"Shopify", "shopify"},
	{"Snap Inc.", "snap inc", "snapchat", "snap"},
	{"Pinterest", "pinterest"},
	{"LinkedIn", "linkedin"},
	{"Twitter/X", "twitter", "x corp"},
	{"Databricks", "databricks"},
	{"Snowflake", "snowflake", "snowflake computing"},
	{"Palantir", "palantir", "palantir technologies"},
	{"Atlassian", "atlassian"},
	{"Spotify", "spotify"},
	{"Reddit", "reddit"},
	{"DoorDash", "doordash"},
	{"Instacart", "instacart"},
	{"Coinbase", "coinbase"},
	{"Figma", "figma"},
	{"Discord", "discord"},
	{"Dropbox", "dropbox"},
	{"Zoom", "zoom", "zoom video", "zoom video communications"},
	{"Twilio", "twilio"},
	{"Block", "block inc", "square"},
	{"Robinhood", "robinhood"},
	{"Plaid", "plaid"},
	{"Notion", "notion"},
	{"Roblox", "roblox"},
	{"Epic Games", "epic games"},
	{"Unity", "unity", "unity technologies"},
	{"Datadog", "datadog"},
	{"Cloudflare", "cloudflare"},
	{"CrowdStrike", "crowdstrike"},
	{"Palo Alto Networks", "palo alto networks"},
	{"ServiceNow", "servicenow"},
	{"Workday", "workday"},
	{"Intuit", "intuit"},
	{"VMware", "vmware"},
	{"AMD", "amd", "advanced micro devices"},
	{"Autodesk", "autodesk"},
	{"DocuSign", "docusign"},
	{"MongoDB", "mongodb"},
	{"Elastic", "elastic", "elasticsearch"},
	{"HashiCorp", "hashicorp"},
	{"Confluent", "confluent"},

	{"OpenAI", "openai"},
	{"Anthropic", "anthropic"},
	{"Deepmind", "deepmind"},
	{"Scale AI", "scale ai"},
	{"Hugging Face", "hugging face", "huggingface"},
	{"Cohere", "cohere"},

	{"Waymo", "waymo"},
	{"Cruise", "cruise", "cruise llc"},
	{"SpaceX", "spacex", "space x"},
	{"Rivian", "rivian"},
	{"Lucid", "lucid", "lucid motors"},
}
