package config

// Base application details
const AppName = "quill"
const ThemesDirName = "themes"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "quill.log"

// Composer defaults
const DefaultMaxHistory = 100
const DefaultSnapGraphemes = true
const SystemClipboard = false

// Parser bounds, in scan steps
const DefaultMaxSteps = 10000
const DefaultMaxCodeSteps = 1000
const DefaultMaxURLSteps = 100
