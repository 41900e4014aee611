package handler

import (
	"wavechat/internal/app/chat"
	"wavechat/internal/configs"
)

// AppDeps bundles the dependencies shared by all HTTP handlers.
type AppDeps struct {
	Hub    *chat.Hub
	Config *configs.AppConfig
}
