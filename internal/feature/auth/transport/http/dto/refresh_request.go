package dto

// RefreshReq は/api/user/refreshおよび/api/user/logoutエンドポイントのリクエストボディを表します。
type RefreshReq struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}
