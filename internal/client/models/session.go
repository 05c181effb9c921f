package models

// Session is the client's belief about who is logged in. IsAuthenticated
// holds only when both User and AccessToken are set.
type Session struct {
	User            *User  `json:"user"`
	AccessToken     string `json:"token"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// Valid reports whether the fields are consistent with IsAuthenticated.
func (s Session) Valid() bool {
	return s.IsAuthenticated == (s.User != nil && s.AccessToken != "")
}

// Theme values for the UI preferences.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// UIPreferences are persisted across restarts.
type UIPreferences struct {
	Theme            string `json:"theme"`
	SidebarCollapsed bool   `json:"sidebarCollapsed"`
}

// Preferences are the persisted account settings toggles.
type Preferences struct {
	EmailNotifications bool   `json:"emailNotifications"`
	PushNotifications  bool   `json:"pushNotifications"`
	WeeklyDigest       bool   `json:"weeklyDigest"`
	DefaultModel       string `json:"defaultModel"`
}

// DefaultPreferences are used on first start.
func DefaultPreferences() Preferences {
	return Preferences{EmailNotifications: true, PushNotifications: true, DefaultModel: "llama"}
}
