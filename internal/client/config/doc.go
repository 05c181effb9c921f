// Package config loads runtime configuration for the docmind client.
//
// Sources & precedence
//
//  1. Defaults declared in env-default struct tags.
//  2. Optional YAML or JSON file chosen with -c / -config or DOCMIND_CONFIG.
//  3. DOCMIND_* environment variables.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   backend API base URL
//	-t int      request timeout (seconds)
//	-d string   local data directory
//
// # File schema
//
//	api_base_url: https://api.example.com/api/v1
//	request_timeout: 30s
//	disabled_features: [analytics]
//	log:
//	  format: zap
//	  level: debug
//	upload:
//	  max_size: 10485760
//	  allowed_extensions: [pdf, docx, txt]
//
// Files and env are parsed by cleanenv; the file is selected by extension.
package config
