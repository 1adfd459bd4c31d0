// Package engine 是 seriekit 的打分核心：基于 TF-IDF 的剧集向量化与相似度排序。
//
// 一次构建、只读使用：
//   - NewEngine 从全量词频快照 { 剧集名: { 词: 次数 } } 构建固定词表、
//     平滑 idf 权重与 L2 归一化的剧集矩阵
//   - 构建完成后实例不可变，可被任意并发请求无锁读取
//   - 数据变化时整体重建新实例并在服务层原子换入，旧请求继续读旧实例
//
// 查询与画像都被"变换"进同一向量空间（词表与 idf 复用、从不重拟合），
// 因此查询向量、画像向量与剧集行向量可直接做余弦相似（点积）。
// 引擎没有错误面：退化输入（空快照、全 OOV 查询、空画像）一律返回空结果。
package engine
