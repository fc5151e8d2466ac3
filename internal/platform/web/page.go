package web

import "html/template"

// pageTemplate is the browser renderer. It draws the board on a canvas and
// reveals path cells as step messages arrive.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<title>robopath</title>
<meta charset="utf-8">
<style>
body { background: #1c1c1c; color: #d0d0d0; font-family: monospace; }
#board { image-rendering: pixelated; border: 1px solid #585858; }
button { font-family: monospace; }
</style>
<script>
const colors = {
    free: "#303030", obstacle: "#005fd7", start: "#00d700", goal: "#ff8700",
    explored: "#444444", path: "#d70000", collision: "#d700d7", agent: "#ffd700"
};
window.addEventListener("load", function() {
    const canvas = document.getElementById("board");
    const ctx = canvas.getContext("2d");
    const status = document.getElementById("status");
    const size = {{.CellSize}};
    let prev = null;
    const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "{{.SocketPath}}" + location.search);

    const paint = function(x, y, cell) {
        ctx.fillStyle = colors[cell] || colors.free;
        ctx.fillRect(x * size + 1, y * size + 1, size - 2, size - 2);
    };
    ws.onmessage = function(evt) {
        const msg = JSON.parse(evt.data);
        const p = msg.payload;
        if (msg.type === "grid") {
            canvas.width = p.width * size;
            canvas.height = p.height * size;
            p.cells.forEach((row, y) => row.forEach((cell, x) => paint(x, y, cell)));
            status.textContent = p.source + " seed " + p.seed + " facing " + p.facing;
            prev = null;
        } else if (msg.type === "step") {
            if (prev) { paint(prev.x, prev.y, prev.cell); }
            paint(p.x, p.y, "agent");
            prev = p;
        } else if (msg.type === "done") {
            if (prev) { paint(prev.x, prev.y, prev.cell); }
            status.textContent = p.summary;
        } else if (msg.type === "error") {
            status.textContent = "error: " + p;
        }
    };
    ws.onclose = function() { status.textContent += " (disconnected)"; };
    document.getElementById("next").onclick = function() { ws.send("next"); };
    document.getElementById("replay").onclick = function() { ws.send("replay"); };
});
</script>
</head>
<body>
<h3>robopath</h3>
<canvas id="board"></canvas>
<p id="status">connecting...</p>
<button id="next">new board</button>
<button id="replay">replay</button>
</body>
</html>
`))

type pageData struct {
	SocketPath string
	CellSize   int
}
