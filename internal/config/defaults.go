package config

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"username":     "",
		"interval":     120,
		"logfile":      "",
		"strategy":     "batched",
		"api_base_url": "https://api.twitch.tv/kraken",
		"client_id":    "",
		"http_timeout": 30,
		"retry_delay":  0,
		"listen_addr":  "",
		"log_level":    "info",
		"log_format":   "text",
	}
}
