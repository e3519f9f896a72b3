// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// LoginReq は/api/user/loginエンドポイントのリクエストボディを表します。
// ユーザー名またはメールアドレスのどちらでもログインできます。
type LoginReq struct {
	UsernameOrEmail string `json:"usernameOrEmail" binding:"required"`
	Password        string `json:"password" binding:"required"`
}
