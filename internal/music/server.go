package music

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	db  DB
	rdb *redis.Client
}

func NewServer(db DB, rdb *redis.Client) *Server {
	return &Server{
		db:  db,
		rdb: rdb,
	}
}

// Routes registers the album/song CRUD endpoints and, behind the supplied
// auth middleware, the playlist and collaboration endpoints.
func (s *Server) Routes(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Post("/albums", s.handleAddAlbum)
	r.Get("/albums/{id}", s.handleGetAlbum)
	r.Put("/albums/{id}", s.handlePutAlbum)
	r.Delete("/albums/{id}", s.handleDeleteAlbum)

	r.Post("/songs", s.handleAddSong)
	r.Get("/songs", s.handleListSongs)
	r.Get("/songs/{id}", s.handleGetSong)
	r.Put("/songs/{id}", s.handlePutSong)
	r.Delete("/songs/{id}", s.handleDeleteSong)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Post("/playlists", s.handleCreatePlaylist)
		r.Get("/playlists", s.handleListPlaylists)
		r.Delete("/playlists/{id}", s.handleDeletePlaylist)

		r.Post("/playlists/{id}/songs", s.handleAddPlaylistSong)
		r.Get("/playlists/{id}/songs", s.handleListPlaylistSongs)
		r.Delete("/playlists/{id}/songs", s.handleDeletePlaylistSong)

		r.Post("/collaborations", s.handleAddCollaboration)
		r.Delete("/collaborations", s.handleDeleteCollaboration)
	})
}
