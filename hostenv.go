// Package hostenv identifies which host environment a page runs inside
// (WeChat in-app browser, mini-program, WeChat Work, vendor browsers...)
// from its user agent and a handful of runtime capability flags.
package hostenv

import (
	"github.com/streamingfast/logging"
)

var zlog, _ = logging.PackageLogger("hostenv", "github.com/streamingfast/hostenv")
