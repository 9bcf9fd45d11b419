// Package docs 由 swag 注解整理的 OpenAPI 描述
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/api/v1/auth/register": {"post": {"tags": ["认证"], "summary": "注册用户", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}},
        "/api/v1/auth/login": {"post": {"tags": ["认证"], "summary": "登录", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/api/v1/posts": {
            "get": {"tags": ["帖子"], "summary": "帖子列表", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["帖子"], "summary": "发帖", "responses": {"201": {"description": "Created"}}},
            "put": {"tags": ["帖子"], "summary": "新增或覆盖帖子", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/posts/feed": {"get": {"tags": ["帖子"], "summary": "Top 帖子", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/posts/{id}": {
            "get": {"tags": ["帖子"], "summary": "查询帖子", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["帖子"], "summary": "删除帖子", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/posts/{id}/like/{userId}": {"put": {"tags": ["帖子"], "summary": "点赞", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/posts/{id}/unlike/{userId}": {"put": {"tags": ["帖子"], "summary": "取消点赞", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/posts/{id}/text": {"put": {"tags": ["帖子"], "summary": "修改帖子正文", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/posts/{id}/image": {"put": {"tags": ["帖子"], "summary": "修改帖子图片", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/posts/{id}/comments": {"post": {"tags": ["评论"], "summary": "评论", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/posts/{id}/comments/{commentId}": {"delete": {"tags": ["评论"], "summary": "删除评论", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/users": {"get": {"tags": ["用户"], "summary": "用户列表", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/users/{id}": {"get": {"tags": ["用户"], "summary": "查询用户", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/v1/users/by-username/{username}": {"get": {"tags": ["用户"], "summary": "按用户名查询", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/v1/users/{id}/password": {"put": {"tags": ["用户"], "summary": "修改密码", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/users/{id}/email": {"put": {"tags": ["用户"], "summary": "修改邮箱", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}},
        "/api/v1/users/{id}/username": {"put": {"tags": ["用户"], "summary": "修改用户名", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}},
        "/api/v1/users/{id}/image": {"put": {"tags": ["用户"], "summary": "修改头像", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/users/{id}/follow": {"put": {"tags": ["关系链"], "summary": "关注用户", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/users/{id}/unfollow": {"put": {"tags": ["关系链"], "summary": "取消关注", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/users/{id}/following": {"get": {"tags": ["关系链"], "summary": "查询关注列表", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/users/{id}/followers": {"get": {"tags": ["关系链"], "summary": "查询粉丝列表", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/users/{id}/feed": {"get": {"tags": ["用户"], "summary": "关注的人的 Top 帖子", "responses": {"200": {"description": "OK"}, "500": {"description": "feed could not be computed"}}}},
        "/api/v1/users/{id}/posts": {"get": {"tags": ["用户"], "summary": "用户的 Top 帖子", "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Social Feed API",
	Description:      "Posts, comments, likes, follows and the per-user top feed.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
