package dto

// AuthTokenRequest 签发操作者令牌的请求参数
type AuthTokenRequest struct {
	ActorID     string `json:"actorId" form:"actorId" binding:"required"`
	Name        string `json:"name" form:"name"`
	SecurityKey string `json:"securityKey" form:"securityKey" binding:"required"`
}

// AuthTokenDTO 操作者令牌
type AuthTokenDTO struct {
	Token   string `json:"token"`
	ActorID string `json:"actorId"`
}
