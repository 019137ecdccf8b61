package api

import (
	"database/sql"
	"net/http"

	"github.com/erazemk/fundbuero/internal/media"
	"github.com/erazemk/fundbuero/web"
)

// NewRouter creates the API router with all endpoints registered. It serves
// /api/..., the stored media under /uploads/ and bundled assets such as the
// item placeholder under /static/.
func NewRouter(db *sql.DB, sessions *Sessions, library *media.Library) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, Sessions: sessions}
	usersHandler := &UsersHandler{DB: db}
	profileHandler := &ProfileHandler{DB: db, Media: library}
	itemsHandler := &ItemsHandler{DB: db, Media: library}
	categoriesHandler := NewCategoriesHandler(db)
	locationsHandler := NewLocationsHandler(db)
	mediaHandler := &MediaHandler{Media: library}

	authed := func(h http.HandlerFunc) http.Handler { return RequireSession(h) }

	// Sessions.
	mux.HandleFunc("POST /api/auth", authHandler.Post)
	mux.HandleFunc("GET /api/auth", authHandler.Status)
	mux.HandleFunc("DELETE /api/auth", authHandler.Logout)

	// Items: read (public), write (reporter).
	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.Handle("POST /api/items", authed(itemsHandler.Create))
	mux.Handle("PUT /api/items", authed(itemsHandler.Update))
	mux.Handle("DELETE /api/items", authed(itemsHandler.Delete))

	// Reference data.
	for path, h := range map[string]*VocabularyHandler{
		"/api/categorydb": categoriesHandler,
		"/api/locations":  locationsHandler,
	} {
		mux.HandleFunc("GET "+path, h.List)
		mux.HandleFunc("POST "+path, h.Create)
		mux.HandleFunc("PUT "+path, h.Update)
		mux.HandleFunc("DELETE "+path, h.Delete)
	}

	// Users and profiles.
	mux.HandleFunc("GET /api/userdb", usersHandler.List)
	mux.HandleFunc("POST /api/userdb", usersHandler.Create)
	mux.Handle("PUT /api/userdb", authed(usersHandler.Update))
	mux.Handle("DELETE /api/userdb", authed(usersHandler.Delete))
	mux.Handle("GET /api/getemail", authed(usersHandler.Contact))
	mux.Handle("PUT /api/profile", authed(profileHandler.Update))
	mux.Handle("POST /api/profile", authed(profileHandler.UploadPicture))

	// Media.
	mux.Handle("POST /api/imagedb", authed(mediaHandler.Upload))
	mux.HandleFunc("GET /uploads/{path...}", mediaHandler.Serve)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(web.StaticFS()))))

	return SessionMiddleware(sessions)(mux)
}
