// Package xconf 加载 TTL 缓存服务的配置，基于 koanf 实现。
//
// # 配置结构
//
//	cache:
//	  default_ttl: 4s
//	  seed:
//	    - {key: a, value: x, ttl: 10s}
//	sweeper:
//	  enabled: true
//	  schedule: "@every 30s"
//	log:
//	  level: info
//	  format: text
//	  file: ""
//
// 缺省字段使用 [Default] 中的值；加载后统一调用 [Config.Validate]。
//
// # 支持的格式
//
//   - YAML：.yaml, .yml
//   - JSON：.json
//
// 时长字段使用 time.ParseDuration 的格式（"500ms"、"4s"、"1m"）。
//
// # 配置监视
//
// [Watch] 基于 fsnotify 监视配置文件所在目录（兼容 vim/emacs 的原子写入），
// 内置防抖。每次变更后重新加载并校验，把新配置或错误交给回调。
// 回调在 Run 的 goroutine 中串行执行，回调中调用 Stop 是安全的。
package xconf
