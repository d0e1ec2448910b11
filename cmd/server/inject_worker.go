package main

import (
	"github.com/google/wire"
	"github.com/pandodao/fuji-wallet/core"
	"github.com/pandodao/fuji-wallet/notify"
	"github.com/pandodao/fuji-wallet/worker/reconciler"
)

var workerSet = wire.NewSet(
	notify.NewHub,
	wire.Bind(new(core.NotificationSink), new(*notify.Hub)),
	reconciler.New,
)
