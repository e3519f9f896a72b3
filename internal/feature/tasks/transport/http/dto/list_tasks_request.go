package dto

// ListTasksReq は/api/task/getAllエンドポイントのクエリパラメータを表します。
// 日付はRFC 3339形式（例: 2026-01-02T15:04:05Z）で指定します。
// 未知のsortBy/sortOrderはエラーにならず、createdAt/descにフォールバックします。
type ListTasksReq struct {
	Status      string `form:"status"`
	Priority    string `form:"priority"`
	DueDateFrom string `form:"dueDateFrom"`
	DueDateTo   string `form:"dueDateTo"`
	SortBy      string `form:"sortBy"`
	SortOrder   string `form:"sortOrder"`
	PageNumber  int    `form:"pageNumber"`
	PageSize    int    `form:"pageSize"`
}
