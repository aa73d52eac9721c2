package enum

//go:generate go run github.com/go-pkgz/enum@latest -type themeMode -lower
type themeMode int

const (
	themeModeAuto themeMode = iota // enum:alias=system
	themeModeLight
	themeModeDark
)

//go:generate go run github.com/go-pkgz/enum@latest -type actualTheme -lower
type actualTheme int

const (
	actualThemeLight actualTheme = iota
	actualThemeDark
)

//go:generate go run github.com/go-pkgz/enum@latest -type settingType -lower
type settingType int

const (
	settingTypeString settingType = iota
	settingTypeInt
	settingTypeBool
)

//go:generate go run github.com/go-pkgz/enum@latest -type keyStatus -lower
type keyStatus int

const (
	keyStatusActive keyStatus = iota
	keyStatusInvalid
)

//go:generate go run github.com/go-pkgz/enum@latest -type channelType -lower
type channelType int

const (
	channelTypeOpenai channelType = iota
	channelTypeGemini
	channelTypeAnthropic
)

//go:generate go run github.com/go-pkgz/enum@latest -type dbType -lower
type dbType int

const (
	dbTypeSQLite   dbType = iota // enum:alias=sqlite
	dbTypePostgres               // enum:alias=postgres,postgresql
)
