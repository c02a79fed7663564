// Package constants defines application-wide constants and default values.
package constants

const (
	// Application metadata
	AppName    = "MediaMatch"
	AppVersion = "1.0.0"

	// Default configuration values
	DefaultPort     = 5000
	DefaultHost     = "127.0.0.1"
	DefaultLogLevel = "info"

	// TMDB endpoints
	DefaultTMDBBaseURL      = "https://api.themoviedb.org/3"
	DefaultTMDBImageBaseURL = "https://image.tmdb.org/t/p/w500"
	PlaceholderPoster       = "/placeholder-movie.jpg"
	AvatarURLTemplate       = "https://ui-avatars.com/api/?name=%s&background=random"

	// Cache settings
	DefaultCacheSize = 1000
	DefaultCacheTTL  = 24 // hours

	// Rate limiting
	TMDBRateLimit = 20 // requests per second
	TMDBRateBurst = 5  // burst capacity

	// Storage
	StorageDriverBolt   = "bolt"
	StorageDriverBadger = "badger"
	StorageDriverMemory = "memory"
	DefaultDatabasePath = "./data/mediamatch.db"

	// Blob store keys
	DirectoryKey = "users"
	UserStateKey = "user-storage"
)

// TMDBMovieGenres maps TMDB movie genre IDs to display names.
var TMDBMovieGenres = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}
