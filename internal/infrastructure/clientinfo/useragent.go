package clientinfo

import (
	"github.com/mssola/useragent"

	"github.com/DOOMSDAY101/MultiQuote-backend/domain"
)

// Parse breaks a raw User-Agent header into the fields recorded on a
// login session. Unknown agents come back as "unknown" rather than empty
// so the stored row stays readable.
func Parse(raw string) domain.DeviceInfo {
	if raw == "" {
		return domain.DeviceInfo{Browser: "unknown", OS: "unknown", DeviceType: "unknown"}
	}

	ua := useragent.New(raw)
	browser, _ := ua.Browser()
	if browser == "" {
		browser = "unknown"
	}
	os := ua.OS()
	if os == "" {
		os = "unknown"
	}

	deviceType := "desktop"
	switch {
	case ua.Bot():
		deviceType = "bot"
	case ua.Mobile():
		deviceType = "mobile"
	}

	return domain.DeviceInfo{
		Browser:    browser,
		OS:         os,
		DeviceType: deviceType,
	}
}
