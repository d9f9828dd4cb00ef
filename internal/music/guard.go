package music

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// The guard answers one question per call: may this user touch this
// playlist. Ownership and collaborations are read fresh from the store on
// every check — a collaborator revoked mid-session loses access on the very
// next request.

func (s *Server) getPlaylist(ctx context.Context, playlistID string) (Playlist, error) {
	var p Playlist
	err := s.db.QueryRow(ctx, `
		SELECT id, name, owner_id, created_at
		FROM playlists
		WHERE id = $1
	`, playlistID).Scan(&p.ID, &p.Name, &p.OwnerID, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Playlist{}, ErrPlaylistNotFound
	}
	if err != nil {
		return Playlist{}, err
	}
	return p, nil
}

// verifyPlaylistOwner succeeds only for the playlist's owner. Used for
// operations reserved to the owner: deleting the playlist and managing
// collaborators.
func (s *Server) verifyPlaylistOwner(ctx context.Context, playlistID, userID string) (Playlist, error) {
	p, err := s.getPlaylist(ctx, playlistID)
	if err != nil {
		return Playlist{}, err
	}
	if p.OwnerID != userID {
		return Playlist{}, ErrForbidden
	}
	return p, nil
}

// verifyPlaylistAccess succeeds for the owner and for any user holding a
// collaboration on the playlist. Used for reading and mutating playlist
// contents.
func (s *Server) verifyPlaylistAccess(ctx context.Context, playlistID, userID string) error {
	p, err := s.getPlaylist(ctx, playlistID)
	if err != nil {
		return err
	}
	if p.OwnerID == userID {
		return nil
	}

	ok, err := s.userIsCollaborator(ctx, playlistID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

func (s *Server) userIsCollaborator(ctx context.Context, playlistID, userID string) (bool, error) {
	var id string
	err := s.db.QueryRow(ctx, `
		SELECT id
		FROM collaborations
		WHERE playlist_id = $1 AND user_id = $2
	`, playlistID, userID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Server) userExists(ctx context.Context, userID string) (bool, error) {
	var id string
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE id = $1`, userID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
