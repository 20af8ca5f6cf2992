package logsvc

import (
	"io"

	glog "github.com/labstack/gommon/log"
	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/contentadmin/core"
	"github.com/trezcool/contentadmin/core/user"
)

// RollbarLogger reports to Rollbar (when a token is configured) & prints to a leveled gommon logger.
type RollbarLogger struct {
	out *glog.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(w io.Writer, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	rollbar.SetEnabled(conf.RollbarToken != "")

	out := glog.New(conf.AppName)
	out.SetOutput(w)
	out.SetHeader("${time_rfc3339} ${level} ${prefix}")
	if conf.Debug {
		out.SetLevel(glog.DEBUG)
	} else {
		out.SetLevel(glog.INFO)
	}
	return &RollbarLogger{out: out}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// expected fmt: msg | error, map[string]interface{}, user.User
func (l RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	var usrSet bool
	newArgs := make([]interface{}, 0, len(args)+1)
	newArgs = append(newArgs, msg)
	for _, arg := range args {
		// set acting User
		if usr, ok := arg.(user.User); ok {
			if !usrSet { // only set one User
				rollbar.SetPerson(usr.ID, usr.Name, usr.Email)
				usrSet = true
			}
		} else {
			newArgs = append(newArgs, arg)
		}
	}
	if !usrSet {
		rollbar.ClearPerson()
	}
	return newArgs
}

// printArgs drops the acting User: its ID is enough in local logs.
func printArgs(msg string, args []interface{}) []interface{} {
	out := make([]interface{}, 0, 2*len(args)+1)
	out = append(out, msg)
	for _, arg := range args {
		if usr, ok := arg.(user.User); ok {
			arg = "user=" + usr.ID
		}
		out = append(out, " ", arg)
	}
	return out
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	rollbar.Debug(l.prepare(msg, args)...)
	l.out.Debug(printArgs(msg, args)...)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	rollbar.Info(l.prepare(msg, args)...)
	l.out.Info(printArgs(msg, args)...)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	rollbar.Warning(l.prepare(msg, args)...)
	l.out.Warn(printArgs(msg, args)...)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	rollbar.Error(l.prepare(msg, args)...)
	l.out.Error(printArgs(msg, args)...)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	rollbar.Critical(l.prepare(msg, args)...)
	rollbar.Wait()
	l.out.Fatal(printArgs(msg, args)...)
}
