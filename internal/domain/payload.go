package domain

// PayloadKind discriminates the assembled response variant.
type PayloadKind string

const (
	PayloadVoice PayloadKind = "voice"
	PayloadText  PayloadKind = "text"
)

// PhotoNotFound is the fixed marker the photo resolver returns when no
// acceptable image URL could be produced.
const PhotoNotFound = "PHOTO_NOT_FOUND"

// ResponsePayload is the transient per-request value the orchestrator hands
// to the transport. A voice payload carries the path of a scoped temporary
// audio file; the transport must release the payload after sending.
type ResponsePayload struct {
	Kind     PayloadKind
	Meme     *MemeRecord
	Emoji    string
	Phrase   string
	Caption  string // voice caption
	Text     string // text-variant body
	PhotoURL string // resolved image URL or PhotoNotFound

	// VoicePath is set only for voice payloads.
	VoicePath string

	// release deletes the temporary audio file; nil for text payloads.
	release func()
}

// SetRelease attaches the cleanup callback for the voice file.
func (p *ResponsePayload) SetRelease(fn func()) {
	p.release = fn
}

// Release deletes the temporary audio resource. Safe to call on any payload
// and on every exit path; it is a no-op when nothing was acquired.
func (p *ResponsePayload) Release() {
	if p.release != nil {
		p.release()
		p.release = nil
	}
}

// HasPhoto reports whether a usable photo link was resolved.
func (p *ResponsePayload) HasPhoto() bool {
	return p.PhotoURL != "" && p.PhotoURL != PhotoNotFound
}
