package i18n

// DefaultMessages returns built-in translations for all supported locales.
// Bundle.LoadDir can override individual keys per locale.
func DefaultMessages() map[Locale]map[string]string {
	return map[Locale]map[string]string{
		LocaleKo: koMessages,
		LocaleEn: enMessages,
		LocaleJa: jaMessages,
	}
}

var koMessages = map[string]string{
	// Common errors
	"error.not_found":         "요청한 리소스를 찾을 수 없습니다",
	"error.unauthorized":      "로그인이 필요합니다.",
	"error.forbidden":         "접근 권한이 없습니다.",
	"error.bad_request":       "잘못된 요청입니다",
	"error.internal":          "서버 오류가 발생했습니다.",
	"error.too_many_requests": "요청이 너무 많습니다. 잠시 후 다시 시도해주세요",
	"error.validation":        "입력값이 올바르지 않습니다",
	"error.conflict":          "다른 요청과 충돌했습니다. 다시 시도해주세요",

	// Auth
	"auth.login_failed":    "이메일 또는 비밀번호가 올바르지 않습니다",
	"auth.token_invalid":   "유효하지 않은 인증 토큰입니다",
	"auth.token_expired":   "인증 토큰이 만료되었습니다. 다시 로그인해주세요",
	"auth.duplicate_email": "이미 사용 중인 이메일입니다.",
	"auth.user_not_found":  "사용자를 찾을 수 없습니다.",

	// Works
	"work.not_found": "작업을 찾을 수 없습니다.",
	"work.not_owner": "작업을 수정할 권한이 없습니다.",
	"work.private":   "비공개 작업입니다.",

	// Templates
	"template.not_found": "템플릿을 찾을 수 없습니다.",
	"template.not_owner": "템플릿을 사용할 권한이 없습니다.",

	// Versions
	"version.not_found": "버전을 찾을 수 없습니다.",
	"version.conflict":  "동시에 다른 버전이 저장되었습니다. 다시 시도해주세요",

	// Comments
	"comment.not_found": "댓글을 찾을 수 없습니다.",
	"comment.empty":     "댓글 내용을 입력해주세요.",
	"comment.not_owner": "댓글을 삭제할 권한이 없습니다.",

	// Autosave
	"autosave.invalid_kind": "지원하지 않는 자동 저장 종류입니다",

	// Rate limiting
	"rate_limit.exceeded": "요청 제한을 초과했습니다. %d초 후 다시 시도해주세요",
}

var enMessages = map[string]string{
	"error.not_found":         "The requested resource was not found",
	"error.unauthorized":      "Login required",
	"error.forbidden":         "Access denied",
	"error.bad_request":       "Bad request",
	"error.internal":          "An internal server error occurred",
	"error.too_many_requests": "Too many requests. Please try again later",
	"error.validation":        "Invalid input",
	"error.conflict":          "The request conflicted with another one. Please retry",

	"auth.login_failed":    "Invalid email or password",
	"auth.token_invalid":   "Invalid authentication token",
	"auth.token_expired":   "Authentication token expired. Please log in again",
	"auth.duplicate_email": "Email is already in use",
	"auth.user_not_found":  "User not found",

	"work.not_found": "Work not found",
	"work.not_owner": "You do not have permission to modify this work",
	"work.private":   "This work is private",

	"template.not_found": "Template not found",
	"template.not_owner": "You do not have permission to use this template",

	"version.not_found": "Version not found",
	"version.conflict":  "Another version was saved at the same time. Please retry",

	"comment.not_found": "Comment not found",
	"comment.empty":     "Please enter a comment",
	"comment.not_owner": "You do not have permission to delete this comment",

	"autosave.invalid_kind": "Unsupported autosave kind",

	"rate_limit.exceeded": "Rate limit exceeded. Please try again in %d seconds",
}

var jaMessages = map[string]string{
	"error.not_found":         "リクエストされたリソースが見つかりません",
	"error.unauthorized":      "ログインが必要です",
	"error.forbidden":         "アクセス権限がありません",
	"error.bad_request":       "不正なリクエストです",
	"error.internal":          "サーバー内部エラーが発生しました",
	"error.too_many_requests": "リクエストが多すぎます。しばらくしてから再試行してください",
	"error.validation":        "入力値が正しくありません",
	"error.conflict":          "他のリクエストと競合しました。再試行してください",

	"auth.login_failed":    "メールアドレスまたはパスワードが正しくありません",
	"auth.token_invalid":   "無効な認証トークンです",
	"auth.token_expired":   "認証トークンの有効期限が切れました。再度ログインしてください",
	"auth.duplicate_email": "このメールアドレスは既に使用されています",
	"auth.user_not_found":  "ユーザーが見つかりません",

	"work.not_found": "作品が見つかりません",
	"work.not_owner": "この作品を編集する権限がありません",
	"work.private":   "非公開の作品です",

	"template.not_found": "テンプレートが見つかりません",
	"template.not_owner": "このテンプレートを使用する権限がありません",

	"version.not_found": "バージョンが見つかりません",
	"version.conflict":  "同時に別のバージョンが保存されました。再試行してください",

	"comment.not_found": "コメントが見つかりません",
	"comment.empty":     "コメントを入力してください",
	"comment.not_owner": "このコメントを削除する権限がありません",

	"autosave.invalid_kind": "サポートされていない自動保存の種類です",

	"rate_limit.exceeded": "リクエスト制限を超えました。%d秒後に再試行してください",
}
