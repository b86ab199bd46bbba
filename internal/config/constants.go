package config

import "time"

// Base application details
const AppName = "tidemark"
const Version = "0.1.0"
const ThemesDirName = "themes"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "tidemark.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

const DefaultTabWidth = 4
const DefaultTheme = "Tidemark Dark"
const SystemClipboard = true
