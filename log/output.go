package log

import (
	"fmt"
	"strings"
	"time"
)

func formatLine(line *logLine) string {
	file := line.file
	if index := strings.LastIndex(file, "/"); index > 0 {
		if second := strings.LastIndex(file[:index], "/"); second > 0 {
			file = file[second+1:]
		}
	}

	return fmt.Sprintf(
		"%s %s %s:%d %s",
		line.timestamp.Format("060102 15:04:05.000"),
		line.level.String(),
		file,
		line.line,
		line.msg,
	)
}

func writeLine(line *logLine) {
	fmt.Println(formatLine(line))
}

func writer() {
	defer close(writerStopSignal)

	for {
		// wait until logs need to be processed
		select {
		case <-logsWaiting:
			logsWaitingFlag.UnSet()
		case <-forceEmptyingOfBuffer:
		case <-shutdownSignal:
			// write remaining lines, then exit
			for {
				select {
				case line := <-logBuffer:
					writeLine(line)
				case <-time.After(10 * time.Millisecond):
					return
				}
			}
		}

		// write all waiting logs
	writeLoop:
		for {
			select {
			case line := <-logBuffer:
				writeLine(line)
			default:
				break writeLoop
			}
		}
	}
}
