package response

import (
	"pulse-backend/internal/model"
)

const timeLayout = "2006-01-02 15:04:05"

// UserView is the account holder's own profile. Never exposes the
// credential hash or push token.
type UserView struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	AvatarEmoji string `json:"avatar_emoji"`
	InviteCode  string `json:"invite_code"`
	CreatedAt   string `json:"created_at"`
}

// NewUserView builds the self-profile view.
func NewUserView(u *model.User) *UserView {
	if u == nil {
		return nil
	}
	return &UserView{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		AvatarEmoji: u.AvatarEmoji,
		InviteCode:  u.InviteCode,
		CreatedAt:   u.CreatedAt.Format(timeLayout),
	}
}

// PhotoView is one profile photo slot.
type PhotoView struct {
	ID       uint   `json:"id"`
	ImageURL string `json:"image"`
	Order    int    `json:"order"`
}

// NewPhotoView builds a photo slot view.
func NewPhotoView(p *model.ProfilePhoto) *PhotoView {
	if p == nil {
		return nil
	}
	return &PhotoView{ID: p.ID, ImageURL: p.ImageURL, Order: p.Slot}
}

// NewPhotoViews builds views for a photo list ordered by slot.
func NewPhotoViews(photos []model.ProfilePhoto) []*PhotoView {
	views := make([]*PhotoView, 0, len(photos))
	for i := range photos {
		views = append(views, NewPhotoView(&photos[i]))
	}
	return views
}

// PublicUserView is a profile as seen by another user. ConnectionStatus is
// relative to the explicit viewer the caller computed it for.
type PublicUserView struct {
	ID               uint         `json:"id"`
	Username         string       `json:"username"`
	AvatarEmoji      string       `json:"avatar_emoji"`
	ConnectionStatus string       `json:"connection_status"`
	ProfilePhotos    []*PhotoView `json:"profile_photos"`
}

// NewPublicUserView builds the viewer-relative public profile.
func NewPublicUserView(u *model.User, connectionStatus string) *PublicUserView {
	if u == nil {
		return nil
	}
	return &PublicUserView{
		ID:               u.ID,
		Username:         u.Username,
		AvatarEmoji:      u.AvatarEmoji,
		ConnectionStatus: connectionStatus,
		ProfilePhotos:    NewPhotoViews(u.Photos),
	}
}

// ConnectionView is a connection record with both parties expanded.
type ConnectionView struct {
	ID        uint      `json:"id"`
	Requester *UserView `json:"requester"`
	Receiver  *UserView `json:"receiver"`
	Status    string    `json:"status"`
	CreatedAt string    `json:"created_at"`
}

// NewConnectionView builds a connection view; requester and receiver must be
// preloaded.
func NewConnectionView(conn *model.Connection) *ConnectionView {
	if conn == nil {
		return nil
	}
	return &ConnectionView{
		ID:        conn.ID,
		Requester: NewUserView(&conn.Requester),
		Receiver:  NewUserView(&conn.Receiver),
		Status:    conn.Status,
		CreatedAt: conn.CreatedAt.Format(timeLayout),
	}
}

// NewConnectionViews builds views for a connection list.
func NewConnectionViews(conns []model.Connection) []*ConnectionView {
	views := make([]*ConnectionView, 0, len(conns))
	for i := range conns {
		views = append(views, NewConnectionView(&conns[i]))
	}
	return views
}

// ReplyView is a threaded reply with its sender expanded.
type ReplyView struct {
	ID        uint      `json:"id"`
	MomentID  uint      `json:"moment_id"`
	Sender    *UserView `json:"sender"`
	Text      string    `json:"text"`
	Emoji     string    `json:"emoji,omitempty"`
	CreatedAt string    `json:"created_at"`
}

// NewReplyView builds a reply view; sender must be preloaded.
func NewReplyView(r *model.Reply) *ReplyView {
	if r == nil {
		return nil
	}
	return &ReplyView{
		ID:        r.ID,
		MomentID:  r.MomentID,
		Sender:    NewUserView(&r.Sender),
		Text:      r.Text,
		Emoji:     r.Emoji,
		CreatedAt: r.CreatedAt.Format(timeLayout),
	}
}

// NewReplyViews builds views for a reply list.
func NewReplyViews(replies []model.Reply) []*ReplyView {
	views := make([]*ReplyView, 0, len(replies))
	for i := range replies {
		views = append(views, NewReplyView(&replies[i]))
	}
	return views
}

// MomentView is a moment with its sender and reply thread expanded.
type MomentView struct {
	ID        uint         `json:"id"`
	Sender    *UserView    `json:"sender"`
	Text      string       `json:"text"`
	Emoji     string       `json:"emoji"`
	ImageURL  string       `json:"image,omitempty"`
	CreatedAt string       `json:"created_at"`
	Replies   []*ReplyView `json:"replies"`
}

// NewMomentView builds a moment view; sender and replies must be preloaded.
func NewMomentView(m *model.Moment) *MomentView {
	if m == nil {
		return nil
	}
	return &MomentView{
		ID:        m.ID,
		Sender:    NewUserView(&m.Sender),
		Text:      m.Text,
		Emoji:     m.Emoji,
		ImageURL:  m.ImageURL,
		CreatedAt: m.CreatedAt.Format(timeLayout),
		Replies:   NewReplyViews(m.Replies),
	}
}

// NewMomentViews builds views for a moment list.
func NewMomentViews(moments []model.Moment) []*MomentView {
	views := make([]*MomentView, 0, len(moments))
	for i := range moments {
		views = append(views, NewMomentView(&moments[i]))
	}
	return views
}

// ActivityView is the aggregated feed: three independently capped sections,
// each newest first, never merged into one ranking.
type ActivityView struct {
	Moments         []*MomentView     `json:"moments"`
	Replies         []*ReplyView      `json:"replies"`
	PendingRequests []*ConnectionView `json:"pending_requests"`
}

// TokenPairView is the login/signup credential payload.
type TokenPairView struct {
	User    *UserView `json:"user"`
	Access  string    `json:"access"`
	Refresh string    `json:"refresh"`
}
