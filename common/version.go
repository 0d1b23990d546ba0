package common

// Version is the tzbot release, see also tipbot.Version for the module.
const Version = "v0.1.0"
