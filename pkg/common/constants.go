package common

const (
	// CollectionStorageKey is the fixed key the file-backed collection
	// store writes the whole stock array under.
	CollectionStorageKey = "sttock_collection_data"

	// GeminiAPIKeyStorageKey is the fixed key the user-supplied Gemini
	// credential is cached under.
	GeminiAPIKeyStorageKey = "sttock_gemini_api_key"

	// RedisKeyVerificationToken prefixes one-time email verification tokens.
	RedisKeyVerificationToken = "sttock:verify:"

	// DefaultEmailDomain is appended to bare usernames to synthesize an
	// email address for the credential store.
	DefaultEmailDomain = "sttock.app"

	// FallbackUsername is displayed when no identity can be derived from
	// the session.
	FallbackUsername = "Trader"

	// FallbackSourceTitle and FallbackSourceURI replace absent fields on a
	// news citation.
	FallbackSourceTitle = "Read Full Story"
	FallbackSourceURI   = "#"

	// FallbackSummary replaces an empty model response.
	FallbackSummary = "No summary available."
)
