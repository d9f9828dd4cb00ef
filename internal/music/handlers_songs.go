package music

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type songRequest struct {
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Genre     string  `json:"genre"`
	Performer string  `json:"performer"`
	Duration  *int    `json:"duration"`
	AlbumID   *string `json:"albumId"`
}

func (req *songRequest) validate() string {
	req.Title = strings.TrimSpace(req.Title)
	req.Genre = strings.TrimSpace(req.Genre)
	req.Performer = strings.TrimSpace(req.Performer)
	if req.Title == "" || req.Genre == "" || req.Performer == "" {
		return "title, genre and performer are required"
	}
	if req.Year <= 0 {
		return "year must be a positive number"
	}
	if req.Duration != nil && *req.Duration < 0 {
		return "duration must not be negative"
	}
	return ""
}

func (s *Server) handleAddSong(w http.ResponseWriter, r *http.Request) {
	var req songRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	id := "song-" + uuid.NewString()
	if _, err := s.db.Exec(r.Context(), `
		INSERT INTO songs (id, title, year, genre, performer, duration, album_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, req.Title, req.Year, req.Genre, req.Performer, req.Duration, req.AlbumID); err != nil {
		log.Printf("openmusic: add song: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"songId": id})
}

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	performer := r.URL.Query().Get("performer")

	rows, err := s.db.Query(r.Context(), `
		SELECT id, title, performer
		FROM songs
		WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR performer ILIKE '%' || $2 || '%')
		ORDER BY created_at ASC
	`, title, performer)
	if err != nil {
		log.Printf("openmusic: list songs: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	defer rows.Close()

	songs := []SongSummary{}
	for rows.Next() {
		var song SongSummary
		if err := rows.Scan(&song.ID, &song.Title, &song.Performer); err != nil {
			log.Printf("openmusic: list songs scan: %v", err)
			writeError(w, http.StatusInternalServerError, "database error")
			return
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		log.Printf("openmusic: list songs rows: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusOK, songs)
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	var song Song
	err := s.db.QueryRow(r.Context(), `
		SELECT id, title, year, genre, performer, duration, album_id, created_at
		FROM songs
		WHERE id = $1
	`, chi.URLParam(r, "id")).Scan(
		&song.ID,
		&song.Title,
		&song.Year,
		&song.Genre,
		&song.Performer,
		&song.Duration,
		&song.AlbumID,
		&song.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		writeError(w, http.StatusNotFound, "song not found")
		return
	}
	if err != nil {
		log.Printf("openmusic: get song: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusOK, song)
}

func (s *Server) handlePutSong(w http.ResponseWriter, r *http.Request) {
	var req songRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	tag, err := s.db.Exec(r.Context(), `
		UPDATE songs
		SET title = $1, year = $2, genre = $3, performer = $4, duration = $5, album_id = $6
		WHERE id = $7
	`, req.Title, req.Year, req.Genre, req.Performer, req.Duration, req.AlbumID, chi.URLParam(r, "id"))
	if err != nil {
		log.Printf("openmusic: put song: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	if tag.RowsAffected() == 0 {
		writeError(w, http.StatusNotFound, "song not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "song updated"})
}

func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	tag, err := s.db.Exec(r.Context(), `DELETE FROM songs WHERE id = $1`, chi.URLParam(r, "id"))
	if err != nil {
		log.Printf("openmusic: delete song: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	if tag.RowsAffected() == 0 {
		writeError(w, http.StatusNotFound, "song not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
