// Package bunker 聊天室连接器
//
// bunker 把用户输入的令牌（房间名或 host:port 字面量）解析为网络端点，
// 可选地把新的 名字→端点 映射登记到注册表，并打开到该端点的 TCP 连接。
//
// # 快速开始
//
//	client, err := bunker.New(ctx,
//	    bunker.WithRegistryPath("./assets/rooms.csv"),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := client.Start(ctx); err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	ep, err := client.Resolve("lobby")
//	if err != nil {
//	    return err // errors.Is(err, bunker.ErrUnresolvable)
//	}
//
//	h, err := client.Connect(ctx, ep)
//	if err != nil {
//	    return err // errors.Is(err, bunker.ErrConnect)
//	}
//	defer h.Close()
//
// # 组件
//
// Client 由以下 Fx 模块组装：
//   - storage: 注册表字节块的存储后端（文本文件或 BadgerDB）
//   - registry: 房间注册表，OnStart 时加载
//   - resolver: 先查注册表、再解析字面量的地址解析器
//   - connmgr: TCP 连接句柄的生命周期
//   - metrics: prometheus 指标（可关闭）
//
// 解析优先查注册表：形如 host:port 的房间名不会被当作字面量。
// 既未登记又不含冒号的令牌直接失败，不会落到任何默认端点。
package bunker
