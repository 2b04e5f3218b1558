package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")

// ErrGenerationLocked 同一 (user, cutoff) 的 DTR 生成正在其他实例上进行
var ErrGenerationLocked = errors.New("该考勤周期的 DTR 正在生成中，请稍后重试")
