package userconfig

// AppConfig is the persisted settings record. Every field falls back to its
// zero value when absent from the document. Numeric fields are 32-bit; larger
// values fail to decode.
type AppConfig struct {
	Theme        string `json:"theme"`
	Color        string `json:"color"`
	Zoom         int32  `json:"zoom"`
	ShowAppRail  bool   `json:"show_app_rail"`
	SidebarOpen  bool   `json:"sidebar_open"`
	SidebarWidth int32  `json:"sidebar_width"`
}

// Patch is a partial AppConfig. Nil fields keep the current value.
type Patch struct {
	Theme        *string `json:"theme"`
	Color        *string `json:"color"`
	Zoom         *int32  `json:"zoom"`
	ShowAppRail  *bool   `json:"show_app_rail"`
	SidebarOpen  *bool   `json:"sidebar_open"`
	SidebarWidth *int32  `json:"sidebar_width"`
}

// Default returns the record used when no settings file exists.
func Default() AppConfig {
	return AppConfig{}
}

// Apply overlays the non-nil fields of p onto cfg and returns the result.
func (p Patch) Apply(cfg AppConfig) AppConfig {
	if p.Theme != nil {
		cfg.Theme = *p.Theme
	}
	if p.Color != nil {
		cfg.Color = *p.Color
	}
	if p.Zoom != nil {
		cfg.Zoom = *p.Zoom
	}
	if p.ShowAppRail != nil {
		cfg.ShowAppRail = *p.ShowAppRail
	}
	if p.SidebarOpen != nil {
		cfg.SidebarOpen = *p.SidebarOpen
	}
	if p.SidebarWidth != nil {
		cfg.SidebarWidth = *p.SidebarWidth
	}
	return cfg
}

// Empty reports whether the patch carries no fields.
func (p Patch) Empty() bool {
	return p.Theme == nil && p.Color == nil && p.Zoom == nil &&
		p.ShowAppRail == nil && p.SidebarOpen == nil && p.SidebarWidth == nil
}
