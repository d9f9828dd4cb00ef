package music

import (
	"errors"
	"time"
)

// Album groups songs. Songs reference it through their albumId.
type Album struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Year      int       `json:"year"`
	CreatedAt time.Time `json:"createdAt"`
}

// Song is a single track. AlbumID and Duration are optional. The JSON
// field names are the documented API contract for the snake_case columns:
// album_id maps to albumId.
type Song struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Year      int       `json:"year"`
	Genre     string    `json:"genre"`
	Performer string    `json:"performer"`
	Duration  *int      `json:"duration,omitempty"`
	AlbumID   *string   `json:"albumId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// SongSummary is the shortened shape used in listings.
type SongSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Performer string `json:"performer"`
}

// Playlist has exactly one owner, fixed at creation. owner_id maps to
// ownerId.
type Playlist struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

// PlaylistSummary is the listing shape: the owner is shown by username,
// not id.
type PlaylistSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// PlaylistWithSongs is returned when reading a playlist's contents.
type PlaylistWithSongs struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Username string        `json:"username"`
	Songs    []SongSummary `json:"songs"`
}

// Collaboration grants a non-owner user access to a playlist. Unique per
// (playlistId, userId) pair. playlist_id maps to playlistId, user_id to
// userId.
type Collaboration struct {
	ID         string `json:"id"`
	PlaylistID string `json:"playlistId"`
	UserID     string `json:"userId"`
}

var (
	ErrAlbumNotFound         = errors.New("album not found")
	ErrSongNotFound          = errors.New("song not found")
	ErrPlaylistNotFound      = errors.New("playlist not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrForbidden             = errors.New("forbidden")
	ErrCollaborationExists   = errors.New("collaboration already exists")
	ErrCollaborationNotFound = errors.New("collaboration not found")
	ErrSongAlreadyInPlaylist = errors.New("song already in playlist")
	ErrSongNotInPlaylist     = errors.New("song not in playlist")
)
