package version

// BuildVersion is set at build time with -ldflags "-X github.com/clambin/keymatrix/version.BuildVersion=..."
var BuildVersion = "change-me"
