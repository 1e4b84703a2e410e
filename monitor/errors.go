package monitor

import (
	"go.uber.org/zap"

	library "gitlab.com/nunet/cudamon/lib"
)

// failures counts and logs the failed driver calls of one poll cycle. Every
// failure is logged and swallowed; the cycle carries on with the field it
// was filling marked unknown.
type failures struct {
	count int
}

func (f *failures) record(err error) {
	f.count++
	logFailure(err)
}

func logFailure(err error) {
	if de, ok := library.AsDriverError(err); ok {
		zlog.Error("Error: "+de.Error(),
			zap.String("library", de.Library),
			zap.String("op", de.Op),
			zap.Int("code", de.Code),
		)
		return
	}
	zlog.Sugar().Errorf("Error: %v", err)
}
