package errors

import "errors"

// ErrInvalidArgument 参数无效：空值、时间范围矛盾、引用不存在的实体等校验失败的统一类别。
// 各模块的业务错误通过 %w 包装它，调用方用 errors.Is 判定。
var ErrInvalidArgument = errors.New("参数无效")

