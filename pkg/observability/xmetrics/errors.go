package xmetrics

import "errors"

// ErrInstrument 表示 NewOTel 创建指标仪表失败，错误信息中带有仪表名。
var ErrInstrument = errors.New("xmetrics: create instrument failed")
