// File: internal/worker/worker.go
package worker

import "sync"

// Job 是丟進 pool 執行的一個工作單元
type Job func()

// Pool 是固定大小的 worker pool。reconciliation 的 per-entry fan-out
// 透過它限制同時打向 Hydra admin API 的請求數。
type Pool interface {
	Submit(Job)
	Stop()
}

// NewPool 啟動 n 個 worker；n <= 0 退回單一 worker
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{queue: make(chan Job)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.queue {
				if job != nil {
					job()
				}
			}
		}()
	}
	return p
}

type pool struct {
	queue chan Job
	wg    sync.WaitGroup
}

// Submit 投遞工作；所有 worker 都在忙時阻塞呼叫端
func (p *pool) Submit(j Job) {
	p.queue <- j
}

// Stop 關閉佇列並等待進行中的工作完成
func (p *pool) Stop() {
	close(p.queue)
	p.wg.Wait()
}
