package text

// Configurations used to setup the requirements of the text models which
// power the study crew. The zero values are backfilled from Default when
// the config file misses fields, typically after an upgrade.
type Configurations struct {
	Model string `json:"model"`
	// TokenWarnLimit warns the user before sending very large study
	// texts, since those cost real money with hosted vendors.
	TokenWarnLimit int    `json:"token-warn-limit"`
	Raw            bool   `json:"raw"`
	ConfigDir      string `json:"-"`
	StdinReplace   string `json:"-"`
	CrewPath       string `json:"-"`
}

var Default = Configurations{
	Model: "gemini-2.0-flash",
	// Aproximately $0.1 for a flash-class model as of 26-08
	TokenWarnLimit: 100000,
	Raw:            false,
}
