package checkpointer

import (
	"fmt"
	"time"
)

// FilenameEnumerator returns a function which returns filenames with an
// increasing integer suffix: name(start+1)extension on the first call,
// name(start+2)extension on the second, and so on. The name parameter
// is the full filename with its path.
func FilenameEnumerator(start int, name, extension string) func() string {
	i := start
	return func() string {
		i++
		return fmt.Sprintf("%v%v%v", name, i, extension)
	}
}

// FileTimer returns a function which will append to a filename the
// number of nanoseconds since January 1, 1970.
func FileTimer(name, extension string) func() string {
	return func() string {
		return fmt.Sprintf("%v-%v%v", name, time.Now().UnixNano(), extension)
	}
}
