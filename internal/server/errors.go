package server

import "errors"

// errNoServersAreCreated is returned when no listen address is configured.
var errNoServersAreCreated = errors.New("no control surface is configured")
