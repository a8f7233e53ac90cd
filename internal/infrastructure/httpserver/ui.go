package httpserver

import (
	"net/http"
	"strings"
	"time"
)

// timeGreeting picks the UI's opening line by local hour.
func timeGreeting(now time.Time) string {
	switch hour := now.Hour(); {
	case hour >= 5 && hour < 12:
		return "Good morning! How can I help you today?"
	case hour >= 12 && hour < 17:
		return "Good afternoon! How can I help you today?"
	case hour >= 17 && hour < 22:
		return "Good evening! What can I assist you with?"
	default:
		return "Hello there! Burning the midnight oil, huh?"
	}
}

// handleIndex renders the chat UI.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	page := strings.Replace(indexHTML, "{{greeting}}", timeGreeting(s.now()), 1)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>ShopBot</title>
    <style>
        body { font-family: sans-serif; background: #f4f4f7; margin: 0; }
        .container { max-width: 640px; margin: 0 auto; padding: 16px; }
        #chat { background: #fff; border-radius: 8px; padding: 12px; height: 60vh; overflow-y: auto; }
        .message { margin: 8px 0; padding: 8px 12px; border-radius: 12px; max-width: 80%; white-space: pre-wrap; }
        .user { background: #2563eb; color: #fff; margin-left: auto; }
        .bot { background: #e5e7eb; }
        form { display: flex; gap: 8px; margin-top: 12px; }
        input { flex: 1; padding: 10px; border: 1px solid #d1d5db; border-radius: 6px; }
        button { padding: 10px 18px; border: 0; border-radius: 6px; background: #2563eb; color: #fff; }
    </style>
</head>
<body>
    <div class="container">
        <h1>ShopBot</h1>
        <div id="chat"><div class="message bot">{{greeting}}</div></div>
        <form id="form">
            <input id="input" placeholder="Ask about orders, delivery, returns..." autocomplete="off">
            <button type="submit">Send</button>
        </form>
    </div>
    <script>
        const chat = document.getElementById('chat');
        const input = document.getElementById('input');

        function add(text, cls) {
            const div = document.createElement('div');
            div.className = 'message ' + cls;
            div.textContent = text;
            chat.appendChild(div);
            chat.scrollTop = chat.scrollHeight;
        }

        fetch('/api/history').then(r => r.json()).then(msgs => {
            for (const m of msgs) add(m.Text, m.Sender === 'user' ? 'user' : 'bot');
        });

        document.getElementById('form').addEventListener('submit', async (e) => {
            e.preventDefault();
            const text = input.value.trim();
            input.value = '';
            add(text || '(empty)', 'user');
            const resp = await fetch('/api/chat', {
                method: 'POST',
                headers: {'Content-Type': 'application/json'},
                body: JSON.stringify({message: text})
            });
            const data = await resp.json();
            add(data.reply, 'bot');
        });
    </script>
</body>
</html>`
