package domain

// MemeRecord is a single catalog entry. Records are immutable after load;
// the catalog replaces them wholesale on reload.
type MemeRecord struct {
	Name         string `json:"name"`
	NameEnglish  string `json:"name_english,omitempty"`
	NameItalian  string `json:"name_italian,omitempty"`
	Description  string `json:"description"`
	TikTokPhrase string `json:"tiktok_phrase"`
}
